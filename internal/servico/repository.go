package servico

import (
	"context"

	"github.com/KromaEnergia/api-apontamentos/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// List traz cada serviço com o cliente embutido; serviços órfãos ficam de fora
	List(ctx context.Context) ([]Servico, error)
	ListByCliente(ctx context.Context, clienteID uint) ([]Servico, error)
	FindByID(ctx context.Context, id uint) (*Servico, error)
	FindByCodigo(ctx context.Context, codigo string) (*Servico, error)
	Create(ctx context.Context, s *Servico) error
	Update(ctx context.Context, id uint, p Patch) (*Servico, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) List(ctx context.Context) ([]Servico, error) {
	var servicos []Servico
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("TipoServico").
		Order("id").
		Find(&servicos).Error
	if err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return SomenteComCliente(servicos), nil
}

func (r *repositoryImpl) ListByCliente(ctx context.Context, clienteID uint) ([]Servico, error) {
	var servicos []Servico
	err := r.db.WithContext(ctx).
		Preload("TipoServico").
		Where("cliente_id = ?", clienteID).
		Order("id").
		Find(&servicos).Error
	return servicos, utils.TraduzirErroDB(err)
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uint) (*Servico, error) {
	var s Servico
	if err := r.db.WithContext(ctx).Preload("TipoServico").First(&s, id).Error; err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &s, nil
}

func (r *repositoryImpl) FindByCodigo(ctx context.Context, codigo string) (*Servico, error) {
	var s Servico
	if err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&s).Error; err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &s, nil
}

func (r *repositoryImpl) Create(ctx context.Context, s *Servico) error {
	return utils.TraduzirErroDB(r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error)
}

func (r *repositoryImpl) Update(ctx context.Context, id uint, p Patch) (*Servico, error) {
	var s Servico
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&s, id).Error; err != nil {
			return err
		}
		p.Aplicar(&s)
		return tx.Omit(clause.Associations).Save(&s).Error
	})
	if err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &s, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&Servico{}, id)
	if res.Error != nil {
		return false, utils.TraduzirErroDB(res.Error)
	}
	return res.RowsAffected > 0, nil
}
