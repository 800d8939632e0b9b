package servico

import (
	"strconv"

	"github.com/KromaEnergia/api-apontamentos/internal/cliente"
	"github.com/KromaEnergia/api-apontamentos/internal/tiposervico"
)

// Servico é a oferta faturável de um cliente, com valor-hora fixo em texto decimal
type Servico struct {
	ID            uint                     `json:"id" gorm:"primaryKey"`
	Codigo        string                   `json:"code" gorm:"uniqueIndex;not null"`
	ClienteID     uint                     `json:"clientId" gorm:"not null;index"`
	Descricao     string                   `json:"description" gorm:"not null"`
	ValorHora     string                   `json:"hourlyRate" gorm:"not null"`
	TipoServicoID *uint                    `json:"serviceTypeId"`
	Cliente       *cliente.Cliente         `json:"client,omitempty" gorm:"foreignKey:ClienteID"`
	TipoServico   *tiposervico.TipoServico `json:"serviceType,omitempty" gorm:"foreignKey:TipoServicoID"`
}

// NormalizarValorHora grava o valor com duas casas, como numa coluna decimal(10,2)
func NormalizarValorHora(v string) string {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

type CriarServicoRequest struct {
	Codigo        string `json:"code" validate:"required"`
	ClienteID     uint   `json:"clientId" validate:"required"`
	Descricao     string `json:"description" validate:"required"`
	ValorHora     string `json:"hourlyRate" validate:"required,valorhora"`
	TipoServicoID *uint  `json:"serviceTypeId" validate:"omitnil,min=1"`
}

func (req CriarServicoRequest) Modelo() Servico {
	return Servico{
		Codigo:        req.Codigo,
		ClienteID:     req.ClienteID,
		Descricao:     req.Descricao,
		ValorHora:     NormalizarValorHora(req.ValorHora),
		TipoServicoID: req.TipoServicoID,
	}
}

// Patch de PUT /api/services/{id}; serviceTypeId 0 remove o tipo
type Patch struct {
	Codigo        *string `json:"code" validate:"omitnil,min=1"`
	ClienteID     *uint   `json:"clientId" validate:"omitnil,min=1"`
	Descricao     *string `json:"description" validate:"omitnil,min=1"`
	ValorHora     *string `json:"hourlyRate" validate:"omitnil,valorhora"`
	TipoServicoID *uint   `json:"serviceTypeId"`
}

func (p Patch) Aplicar(s *Servico) {
	if p.Codigo != nil {
		s.Codigo = *p.Codigo
	}
	if p.ClienteID != nil {
		s.ClienteID = *p.ClienteID
	}
	if p.Descricao != nil {
		s.Descricao = *p.Descricao
	}
	if p.ValorHora != nil {
		s.ValorHora = NormalizarValorHora(*p.ValorHora)
	}
	if p.TipoServicoID != nil {
		if *p.TipoServicoID == 0 {
			s.TipoServicoID = nil
		} else {
			id := *p.TipoServicoID
			s.TipoServicoID = &id
		}
	}
	s.Cliente = nil
	s.TipoServico = nil
}

// SomenteComCliente descarta serviços cujo cliente não foi resolvido
func SomenteComCliente(servicos []Servico) []Servico {
	out := make([]Servico, 0, len(servicos))
	for _, s := range servicos {
		if s.Cliente != nil {
			out = append(out, s)
		}
	}
	return out
}
