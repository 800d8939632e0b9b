package apontamento

import (
	"errors"

	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
	"github.com/KromaEnergia/api-apontamentos/internal/servico"
)

// BuscarServico resolve um serviço dentro da mesma unidade atômica da escrita
type BuscarServico func(id uint) (*servico.Servico, error)

// Preparar é chamado no cadastro: confere o cliente do serviço e calcula os totais
func Preparar(a *Apontamento, buscar BuscarServico) error {
	s, err := buscar(a.ServicoID)
	if err != nil {
		return apperr.ComRecurso(err, "Service")
	}
	if err := checarCliente(a, s); err != nil {
		return err
	}
	return calcular(a, s)
}

// Mesclar aplica o patch e recalcula com os campos mesclados e o valor-hora atual
// apenas quando horário, intervalo ou serviço mudaram.
func Mesclar(a *Apontamento, p Patch, buscar BuscarServico) error {
	p.Aplicar(a)
	if issues := checarIntervalo(a.InicioIntervalo, a.FimIntervalo); len(issues) > 0 {
		return apperr.Validacao("Invalid data", issues...)
	}

	recalcular := p.AfetaCalculo()
	if !recalcular && p.ClienteID == nil {
		return nil
	}

	s, err := buscar(a.ServicoID)
	if err != nil {
		return apperr.ComRecurso(err, "Service")
	}
	if err := checarCliente(a, s); err != nil {
		return err
	}
	if !recalcular {
		return nil
	}
	return calcular(a, s)
}

func checarCliente(a *Apontamento, s *servico.Servico) error {
	if s.ClienteID != a.ClienteID {
		return apperr.Validacao("Invalid data", apperr.Issue{
			Path:    "serviceId",
			Message: "service does not belong to the selected client",
			Code:    "client_mismatch",
		})
	}
	return nil
}

func calcular(a *Apontamento, s *servico.Servico) error {
	c, err := CalcularHorasEValor(a.HoraInicio, a.HoraFim, a.InicioIntervalo, a.FimIntervalo, s.ValorHora)
	if err != nil {
		campo := "startTime"
		if errors.Is(err, ErrValorHoraInvalido) {
			campo = "hourlyRate"
		}
		return apperr.Validacao("Invalid data", apperr.Issue{Path: campo, Message: err.Error(), Code: "invalid"})
	}
	a.TotalHoras, a.TotalValor = c.Horas, c.Valor
	return nil
}
