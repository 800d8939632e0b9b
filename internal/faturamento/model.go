package faturamento

import (
	"github.com/KromaEnergia/api-apontamentos/internal/apontamento"
	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
	"github.com/KromaEnergia/api-apontamentos/internal/cliente"
	"github.com/KromaEnergia/api-apontamentos/internal/relatorio"
)

const (
	Detalhado = "detailed"
	Sintetico = "synthetic"
)

// Requisicao é o corpo de /api/billing/summary e /api/billing/generate-pdf.
// entryIds vazio considera todos os apontamentos do período.
type Requisicao struct {
	ClienteID      uint   `json:"clientId" validate:"required"`
	DataInicio     string `json:"startDate" validate:"required,datetime=2006-01-02"`
	DataFim        string `json:"endDate" validate:"required,datetime=2006-01-02"`
	ApontamentoIDs []uint `json:"entryIds" validate:"omitempty,dive,min=1"`
	TipoRelatorio  string `json:"reportType" validate:"omitempty,oneof=detailed synthetic"`
}

func (req Requisicao) ValidarRegras() []apperr.Issue {
	if req.DataFim < req.DataInicio {
		return []apperr.Issue{{Path: "endDate", Message: "must not be before startDate", Code: "date_order"}}
	}
	return nil
}

func (req Requisicao) Filtro() apontamento.Filtro {
	id := req.ClienteID
	return apontamento.Filtro{
		DataInicio: req.DataInicio,
		DataFim:    req.DataFim,
		ClienteID:  &id,
		IDs:        req.ApontamentoIDs,
	}
}

func (req Requisicao) Tipo() string {
	if req.TipoRelatorio == "" {
		return Detalhado
	}
	return req.TipoRelatorio
}

// Resumo alimenta a tela de faturamento e o PDF
type Resumo struct {
	Cliente           cliente.Cliente              `json:"client"`
	DataInicio        string                       `json:"startDate"`
	DataFim           string                       `json:"endDate"`
	TipoRelatorio     string                       `json:"reportType"`
	TotalHoras        float64                      `json:"totalHours"`
	TotalValor        float64                      `json:"totalValue"`
	TotalApontamentos int                          `json:"totalEntries"`
	Grupos            []relatorio.GrupoFaturamento `json:"groups"`
	Apontamentos      []apontamento.Apontamento    `json:"entries,omitempty"`
}

// Montar calcula os totais; no sintético os apontamentos individuais ficam de fora
func Montar(req Requisicao, c cliente.Cliente, lista []apontamento.Apontamento) Resumo {
	r := Resumo{
		Cliente:       c,
		DataInicio:    req.DataInicio,
		DataFim:       req.DataFim,
		TipoRelatorio: req.Tipo(),
		Grupos:        relatorio.AgruparFaturamento(lista),
	}
	for _, a := range lista {
		r.TotalHoras += a.TotalHoras
		r.TotalValor += a.TotalValor
	}
	r.TotalApontamentos = len(lista)
	if r.TipoRelatorio == Detalhado {
		r.Apontamentos = lista
	}
	return r
}
