package apontamento

import (
	"github.com/KromaEnergia/api-apontamentos/internal/cliente"
	"github.com/KromaEnergia/api-apontamentos/internal/consultor"
	"github.com/KromaEnergia/api-apontamentos/internal/servico"
	"github.com/KromaEnergia/api-apontamentos/internal/setor"
)

// Apontamento é uma sessão de trabalho de um consultor para um cliente/serviço.
// TotalHoras e TotalValor são sempre derivados (ver CalcularHorasEValor).
type Apontamento struct {
	ID                 uint    `json:"id" gorm:"primaryKey"`
	Data               string  `json:"date" gorm:"type:varchar(10);not null;index"`
	ConsultorID        uint    `json:"consultantId" gorm:"not null;index"`
	ClienteID          uint    `json:"clientId" gorm:"not null;index"`
	ServicoID          uint    `json:"serviceId" gorm:"not null"`
	SetorID            *uint   `json:"sectorId"`
	HoraInicio         string  `json:"startTime" gorm:"type:varchar(5);not null"`
	HoraFim            string  `json:"endTime" gorm:"type:varchar(5);not null"`
	InicioIntervalo    *string `json:"breakStartTime" gorm:"type:varchar(5)"`
	FimIntervalo       *string `json:"breakEndTime" gorm:"type:varchar(5)"`
	Descricao          string  `json:"description"`
	TotalHoras         float64 `json:"totalHours" gorm:"not null"`
	TotalValor         float64 `json:"totalValue" gorm:"not null"`
	AtividadeConcluida *string `json:"activityCompleted"`
	PrevisaoEntrega    *string `json:"deliveryForecast"`
	EntregaReal        *string `json:"actualDelivery"`
	Projeto            *string `json:"project"`
	LocalServico       *string `json:"serviceLocation"`

	// preenchidos só nas listagens detalhadas
	Consultor *consultor.Consultor `json:"consultant,omitempty" gorm:"foreignKey:ConsultorID"`
	Cliente   *cliente.Cliente     `json:"client,omitempty" gorm:"foreignKey:ClienteID"`
	Servico   *servico.Servico     `json:"service,omitempty" gorm:"foreignKey:ServicoID"`
	Setor     *setor.Setor         `json:"sector,omitempty" gorm:"foreignKey:SetorID"`
}

// Completo indica que consultor, cliente e serviço foram resolvidos
func (a Apontamento) Completo() bool {
	return a.Consultor != nil && a.Cliente != nil && a.Servico != nil
}

// SomenteCompletos descarta apontamentos com referência pendente
func SomenteCompletos(lista []Apontamento) []Apontamento {
	out := make([]Apontamento, 0, len(lista))
	for _, a := range lista {
		if a.Completo() {
			out = append(out, a)
		}
	}
	return out
}

// SemRelacoes devolve uma cópia sem as entidades embutidas
func (a Apontamento) SemRelacoes() Apontamento {
	a.Consultor, a.Cliente, a.Servico, a.Setor = nil, nil, nil, nil
	return a
}
