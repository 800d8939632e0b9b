package setor

import (
	"context"

	"github.com/KromaEnergia/api-apontamentos/internal/utils"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context) ([]Setor, error)
	ListByCliente(ctx context.Context, clienteID uint) ([]Setor, error)
	FindByID(ctx context.Context, id uint) (*Setor, error)
	FindByCodigo(ctx context.Context, codigo string) (*Setor, error)
	Create(ctx context.Context, s *Setor) error
	Update(ctx context.Context, id uint, p Patch) (*Setor, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) List(ctx context.Context) ([]Setor, error) {
	var setores []Setor
	err := r.db.WithContext(ctx).Order("id").Find(&setores).Error
	return setores, utils.TraduzirErroDB(err)
}

func (r *repositoryImpl) ListByCliente(ctx context.Context, clienteID uint) ([]Setor, error) {
	var setores []Setor
	err := r.db.WithContext(ctx).Where("cliente_id = ?", clienteID).Order("id").Find(&setores).Error
	return setores, utils.TraduzirErroDB(err)
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uint) (*Setor, error) {
	var s Setor
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &s, nil
}

func (r *repositoryImpl) FindByCodigo(ctx context.Context, codigo string) (*Setor, error) {
	var s Setor
	if err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&s).Error; err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &s, nil
}

func (r *repositoryImpl) Create(ctx context.Context, s *Setor) error {
	return utils.TraduzirErroDB(r.db.WithContext(ctx).Create(s).Error)
}

func (r *repositoryImpl) Update(ctx context.Context, id uint, p Patch) (*Setor, error) {
	var s Setor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&s, id).Error; err != nil {
			return err
		}
		p.Aplicar(&s)
		return tx.Save(&s).Error
	})
	if err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &s, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&Setor{}, id)
	if res.Error != nil {
		return false, utils.TraduzirErroDB(res.Error)
	}
	return res.RowsAffected > 0, nil
}
