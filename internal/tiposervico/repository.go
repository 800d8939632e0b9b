package tiposervico

import (
	"context"

	"github.com/KromaEnergia/api-apontamentos/internal/utils"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context) ([]TipoServico, error)
	FindByID(ctx context.Context, id uint) (*TipoServico, error)
	FindByCodigo(ctx context.Context, codigo string) (*TipoServico, error)
	Create(ctx context.Context, t *TipoServico) error
	Update(ctx context.Context, id uint, p Patch) (*TipoServico, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) List(ctx context.Context) ([]TipoServico, error) {
	var tipos []TipoServico
	err := r.db.WithContext(ctx).Order("id").Find(&tipos).Error
	return tipos, utils.TraduzirErroDB(err)
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uint) (*TipoServico, error) {
	var t TipoServico
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &t, nil
}

func (r *repositoryImpl) FindByCodigo(ctx context.Context, codigo string) (*TipoServico, error) {
	var t TipoServico
	if err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&t).Error; err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &t, nil
}

func (r *repositoryImpl) Create(ctx context.Context, t *TipoServico) error {
	return utils.TraduzirErroDB(r.db.WithContext(ctx).Create(t).Error)
}

func (r *repositoryImpl) Update(ctx context.Context, id uint, p Patch) (*TipoServico, error) {
	var t TipoServico
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, id).Error; err != nil {
			return err
		}
		p.Aplicar(&t)
		return tx.Save(&t).Error
	})
	if err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &t, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&TipoServico{}, id)
	if res.Error != nil {
		return false, utils.TraduzirErroDB(res.Error)
	}
	return res.RowsAffected > 0, nil
}
