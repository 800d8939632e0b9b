package cliente

import (
	"context"

	"github.com/KromaEnergia/api-apontamentos/internal/utils"
	"gorm.io/gorm"
)

// Repository é implementado pelo gorm (abaixo) e pelo store em memória
type Repository interface {
	List(ctx context.Context) ([]Cliente, error)
	FindByID(ctx context.Context, id uint) (*Cliente, error)
	FindByCodigo(ctx context.Context, codigo string) (*Cliente, error)
	FindByCNPJ(ctx context.Context, cnpj string) (*Cliente, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, c *Cliente) error
	Update(ctx context.Context, id uint, p Patch) (*Cliente, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) List(ctx context.Context) ([]Cliente, error) {
	var clientes []Cliente
	err := r.db.WithContext(ctx).Order("id").Find(&clientes).Error
	return clientes, utils.TraduzirErroDB(err)
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uint) (*Cliente, error) {
	var c Cliente
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &c, nil
}

func (r *repositoryImpl) FindByCodigo(ctx context.Context, codigo string) (*Cliente, error) {
	var c Cliente
	if err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&c).Error; err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &c, nil
}

func (r *repositoryImpl) FindByCNPJ(ctx context.Context, cnpj string) (*Cliente, error) {
	var c Cliente
	if err := r.db.WithContext(ctx).Where("cnpj = ?", cnpj).First(&c).Error; err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &c, nil
}

func (r *repositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Cliente{}).Count(&n).Error
	return n, utils.TraduzirErroDB(err)
}

func (r *repositoryImpl) Create(ctx context.Context, c *Cliente) error {
	return utils.TraduzirErroDB(r.db.WithContext(ctx).Create(c).Error)
}

func (r *repositoryImpl) Update(ctx context.Context, id uint, p Patch) (*Cliente, error) {
	var c Cliente
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
	res := r.db.WithContext(ctx).Delete(&Cliente{}, id)
	if res.Error != nil {
		return false, utils.TraduzirErroDB(res.Error)
	}
	return res.RowsAffected > 0, nil
}
