package apontamento

import (
	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
)

// CriarApontamentoRequest é o payload de POST /api/time-entries.
// totalHours/totalValue enviados pelo cliente são ignorados.
type CriarApontamentoRequest struct {
	Data               string  `json:"date" validate:"required,datetime=2006-01-02"`
	ConsultorID        uint    `json:"consultantId" validate:"required"`
	ClienteID          uint    `json:"clientId" validate:"required"`
	ServicoID          uint    `json:"serviceId" validate:"required"`
	SetorID            *uint   `json:"sectorId"`
	HoraInicio         string  `json:"startTime" validate:"required,hora"`
	HoraFim            string  `json:"endTime" validate:"required,hora"`
	InicioIntervalo    *string `json:"breakStartTime" validate:"omitempty,hora"`
	FimIntervalo       *string `json:"breakEndTime" validate:"omitempty,hora"`
	Descricao          string  `json:"description"`
	AtividadeConcluida *string `json:"activityCompleted" validate:"omitempty,oneof=sim nao"`
	PrevisaoEntrega    *string `json:"deliveryForecast" validate:"omitempty,datetime=2006-01-02"`
	EntregaReal        *string `json:"actualDelivery" validate:"omitempty,datetime=2006-01-02"`
	Projeto            *string `json:"project"`
	LocalServico       *string `json:"serviceLocation" validate:"omitempty,oneof=presencial remoto"`
}

func (req CriarApontamentoRequest) ValidarRegras() []apperr.Issue {
	return checarIntervalo(req.InicioIntervalo, req.FimIntervalo)
}

func (req CriarApontamentoRequest) Modelo() Apontamento {
	a := Apontamento{
		Data:               req.Data,
		ConsultorID:        req.ConsultorID,
		ClienteID:          req.ClienteID,
		ServicoID:          req.ServicoID,
		HoraInicio:         req.HoraInicio,
		HoraFim:            req.HoraFim,
		InicioIntervalo:    nulo(req.InicioIntervalo),
		FimIntervalo:       nulo(req.FimIntervalo),
		Descricao:          req.Descricao,
		AtividadeConcluida: nulo(req.AtividadeConcluida),
		PrevisaoEntrega:    nulo(req.PrevisaoEntrega),
		EntregaReal:        nulo(req.EntregaReal),
		Projeto:            nulo(req.Projeto),
		LocalServico:       nulo(req.LocalServico),
	}
	if req.SetorID != nil && *req.SetorID != 0 {
		id := *req.SetorID
		a.SetorID = &id
	}
	return a
}

// Patch de PUT /api/time-entries/{id}.
// Campo ausente fica como está; "" limpa um campo opcional; sectorId 0 remove o setor.
type Patch struct {
	Data               *string `json:"date" validate:"omitnil,datetime=2006-01-02"`
	ConsultorID        *uint   `json:"consultantId" validate:"omitnil,min=1"`
	ClienteID          *uint   `json:"clientId" validate:"omitnil,min=1"`
	ServicoID          *uint   `json:"serviceId" validate:"omitnil,min=1"`
	SetorID            *uint   `json:"sectorId"`
	HoraInicio         *string `json:"startTime" validate:"omitnil,hora"`
	HoraFim            *string `json:"endTime" validate:"omitnil,hora"`
	InicioIntervalo    *string `json:"breakStartTime" validate:"omitempty,hora"`
	FimIntervalo       *string `json:"breakEndTime" validate:"omitempty,hora"`
	Descricao          *string `json:"description"`
	AtividadeConcluida *string `json:"activityCompleted" validate:"omitempty,oneof=sim nao"`
	PrevisaoEntrega    *string `json:"deliveryForecast" validate:"omitempty,datetime=2006-01-02"`
	EntregaReal        *string `json:"actualDelivery" validate:"omitempty,datetime=2006-01-02"`
	Projeto            *string `json:"project"`
	LocalServico       *string `json:"serviceLocation" validate:"omitempty,oneof=presencial remoto"`
}

// AfetaCalculo indica se o patch mexe em horário, intervalo ou serviço
func (p Patch) AfetaCalculo() bool {
	return p.HoraInicio != nil || p.HoraFim != nil ||
		p.InicioIntervalo != nil || p.FimIntervalo != nil || p.ServicoID != nil
}

// Aplicar mescla o patch no apontamento existente; totais não são tocados aqui
func (p Patch) Aplicar(a *Apontamento) {
	if p.Data != nil {
		a.Data = *p.Data
	}
	if p.ConsultorID != nil {
		a.ConsultorID = *p.ConsultorID
	}
	if p.ClienteID != nil {
		a.ClienteID = *p.ClienteID
	}
	if p.ServicoID != nil {
		a.ServicoID = *p.ServicoID
	}
	if p.SetorID != nil {
		if *p.SetorID == 0 {
			a.SetorID = nil
		} else {
			id := *p.SetorID
			a.SetorID = &id
		}
	}
	if p.HoraInicio != nil {
		a.HoraInicio = *p.HoraInicio
	}
	if p.HoraFim != nil {
		a.HoraFim = *p.HoraFim
	}
	if p.InicioIntervalo != nil {
		a.InicioIntervalo = nulo(p.InicioIntervalo)
	}
	if p.FimIntervalo != nil {
		a.FimIntervalo = nulo(p.FimIntervalo)
	}
	if p.Descricao != nil {
		a.Descricao = *p.Descricao
	}
	if p.AtividadeConcluida != nil {
		a.AtividadeConcluida = nulo(p.AtividadeConcluida)
	}
	if p.PrevisaoEntrega != nil {
		a.PrevisaoEntrega = nulo(p.PrevisaoEntrega)
	}
	if p.EntregaReal != nil {
		a.EntregaReal = nulo(p.EntregaReal)
	}
	if p.Projeto != nil {
		a.Projeto = nulo(p.Projeto)
	}
	if p.LocalServico != nil {
		a.LocalServico = nulo(p.LocalServico)
	}
}

// checarIntervalo: os dois extremos ou nenhum, e o fim não pode vir antes do início
func checarIntervalo(inicio, fim *string) []apperr.Issue {
	switch {
	case presente(inicio) && !presente(fim):
		return []apperr.Issue{{Path: "breakEndTime", Message: "break end is required when break start is set", Code: "break_pair"}}
	case !presente(inicio) && presente(fim):
		return []apperr.Issue{{Path: "breakStartTime", Message: "break start is required when break end is set", Code: "break_pair"}}
	case presente(inicio) && presente(fim) && *fim < *inicio:
		return []apperr.Issue{{Path: "breakEndTime", Message: "break end must not be before break start", Code: "break_order"}}
	}
	return nil
}

func nulo(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
