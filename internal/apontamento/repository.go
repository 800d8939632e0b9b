package apontamento

import (
	"context"

	"github.com/KromaEnergia/api-apontamentos/internal/servico"
	"github.com/KromaEnergia/api-apontamentos/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Create resolve o serviço, calcula os totais e grava numa única transação
	Create(ctx context.Context, a *Apontamento) error
	// Update mescla o patch e recalcula quando necessário, também numa transação
	Update(ctx context.Context, id uint, p Patch) (*Apontamento, error)
	Delete(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*Apontamento, error)
	// ListDetalhados embute consultor, cliente, serviço (com tipo) e setor;
	// apontamentos com referência pendente são descartados sem erro
	ListDetalhados(ctx context.Context, f Filtro) ([]Apontamento, error)
	// ListDoMes traz os apontamentos crus com data começando em "YYYY-MM"
	ListDoMes(ctx context.Context, prefixo string) ([]Apontamento, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func buscarServicoTx(tx *gorm.DB) BuscarServico {
	return func(id uint) (*servico.Servico, error) {
		var s servico.Servico
		if err := tx.First(&s, id).Error; err != nil {
			return nil, utils.TraduzirErroDB(err)
		}
		return &s, nil
	}
}

func (r *repositoryImpl) Create(ctx context.Context, a *Apontamento) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Preparar(a, buscarServicoTx(tx)); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(a).Error
	})
	return utils.TraduzirErroDB(err)
}

func (r *repositoryImpl) Update(ctx context.Context, id uint, p Patch) (*Apontamento, error) {
	var a Apontamento
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&a, id).Error; err != nil {
			return err
		}
		if err := Mesclar(&a, p, buscarServicoTx(tx)); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&a).Error
	})
	if err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &a, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&Apontamento{}, id)
	if res.Error != nil {
		return false, utils.TraduzirErroDB(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uint) (*Apontamento, error) {
	var a Apontamento
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return &a, nil
}

func (r *repositoryImpl) ListDetalhados(ctx context.Context, f Filtro) ([]Apontamento, error) {
	q := r.db.WithContext(ctx).
		Preload("Consultor").
		Preload("Cliente").
		Preload("Servico.TipoServico").
		Preload("Setor")

	if f.DataInicio != "" {
		q = q.Where("data >= ?", f.DataInicio)
	}
	if f.DataFim != "" {
		q = q.Where("data <= ?", f.DataFim)
	}
	if f.ClienteID != nil {
		q = q.Where("cliente_id = ?", *f.ClienteID)
	}
	if f.ConsultorID != nil {
		q = q.Where("consultor_id = ?", *f.ConsultorID)
	}
	if len(f.IDs) > 0 {
		q = q.Where("id IN ?", f.IDs)
	}

	var lista []Apontamento
	if err := q.Order("data desc").Order("id asc").Find(&lista).Error; err != nil {
		return nil, utils.TraduzirErroDB(err)
	}
	return SomenteCompletos(lista), nil
}

func (r *repositoryImpl) ListDoMes(ctx context.Context, prefixo string) ([]Apontamento, error) {
	var lista []Apontamento
	err := r.db.WithContext(ctx).Where("data LIKE ?", prefixo+"-%").Order("id").Find(&lista).Error
	return lista, utils.TraduzirErroDB(err)
}
