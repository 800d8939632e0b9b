package consultor

import (
	"context"

	"github.com/KromaEnergia/api-apontamentos/internal/utils"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context) ([]Consultor, error)
	FindByID(ctx context.Context, id uint) (*Consultor, error)
	FindByCodigo(ctx context.Context, codigo string) (*Consultor, error)
	Create(ctx context.Context, c *Consultor) error
	Update(ctx context.Context, id uint, p Patch) (*Consultor, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) List(ctx context.Context) ([]Consultor, error) {
	var consultores []Consultor
	err := r.db.WithContext(ctx).Order("id").Find(&consultores).Error
	return consultores, utils.TraduzirErroDB(err)
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uint) (*Consultor, error) {
	var c Consultor
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &c, nil
}

// FindByCodigo é usado no login e na checagem de código duplicado
func (r *repositoryImpl) FindByCodigo(ctx context.Context, codigo string) (*Consultor, error) {
	var c Consultor
	if err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&c).Error; err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &c, nil
}

func (r *repositoryImpl) Create(ctx context.Context, c *Consultor) error {
	return utils.TraduzirErroDB(r.db.WithContext(ctx).Create(c).Error)
}

func (r *repositoryImpl) Update(ctx context.Context, id uint, p Patch) (*Consultor, error) {
	var c Consultor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return err
		}
		p.Aplicar(&c)
		return tx.Save(&c).Error
	})
	if err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &c, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&Consultor{}, id)
	if res.Error != nil {
		return false, utils.TraduzirErroDB(res.Error)
	}
	return res.RowsAffected > 0, nil
}
