package relatorio

import (
	"sort"

	"github.com/KromaEnergia/api-apontamentos/internal/apontamento"
)

const (
	SemSetor = "Sem Setor"
	SemTipo  = "Sem Tipo"
)

type ResumoCliente struct {
	ClienteID    uint    `json:"clientId"`
	NomeCliente  string  `json:"clientName"`
	Horas        float64 `json:"hours"`
	Valor        float64 `json:"value"`
	Apontamentos int     `json:"entries"`
}

// Relatorio é o agregado de GET /api/reports
type Relatorio struct {
	TotalHoras        float64         `json:"totalHours"`
	TotalValor        float64         `json:"totalValue"`
	TotalApontamentos int             `json:"totalEntries"`
	TotalClientes     int             `json:"totalClients"`
	PorCliente        []ResumoCliente `json:"clientBreakdown"`
}

// Gerar soma os apontamentos já filtrados. PorCliente sai ordenado por valor
// decrescente, mantendo a ordem de aparição nos empates.
func Gerar(lista []apontamento.Apontamento) Relatorio {
	rel := Relatorio{PorCliente: []ResumoCliente{}}
	indice := map[uint]int{}

	for _, a := range lista {
		rel.TotalHoras += a.TotalHoras
		rel.TotalValor += a.TotalValor
		rel.TotalApontamentos++

		i, ok := indice[a.ClienteID]
		if !ok {
			nome := ""
			if a.Cliente != nil {
				nome = a.Cliente.Nome
			}
			rel.PorCliente = append(rel.PorCliente, ResumoCliente{ClienteID: a.ClienteID, NomeCliente: nome})
			i = len(rel.PorCliente) - 1
			indice[a.ClienteID] = i
		}
		rc := &rel.PorCliente[i]
		rc.Horas += a.TotalHoras
		rc.Valor += a.TotalValor
		rc.Apontamentos++
	}

	rel.TotalClientes = len(rel.PorCliente)
	sort.SliceStable(rel.PorCliente, func(i, j int) bool {
		return rel.PorCliente[i].Valor > rel.PorCliente[j].Valor
	})
	return rel
}

// GrupoFaturamento agrega por projeto (descrição do serviço), setor e tipo de serviço
type GrupoFaturamento struct {
	Projeto      string  `json:"project"`
	Setor        string  `json:"sector"`
	TipoServico  string  `json:"serviceType"`
	Horas        float64 `json:"hours"`
	Valor        float64 `json:"value"`
	Apontamentos int     `json:"entries"`
}

type chaveGrupo struct {
	projeto, setor, tipo string
}

// AgruparFaturamento mantém a ordem em que cada grupo aparece pela primeira vez
func AgruparFaturamento(lista []apontamento.Apontamento) []GrupoFaturamento {
	grupos := []GrupoFaturamento{}
	indice := map[chaveGrupo]int{}

	for _, a := range lista {
		k := chaveDe(a)
		i, ok := indice[k]
		if !ok {
			grupos = append(grupos, GrupoFaturamento{Projeto: k.projeto, Setor: k.setor, TipoServico: k.tipo})
			i = len(grupos) - 1
			indice[k] = i
		}
		g := &grupos[i]
		g.Horas += a.TotalHoras
		g.Valor += a.TotalValor
		g.Apontamentos++
	}
	return grupos
}

func chaveDe(a apontamento.Apontamento) chaveGrupo {
	k := chaveGrupo{setor: SemSetor, tipo: SemTipo}
	if a.Servico != nil {
		k.projeto = a.Servico.Descricao
		if a.Servico.TipoServico != nil && a.Servico.TipoServico.Descricao != "" {
			k.tipo = a.Servico.TipoServico.Descricao
		}
	}
	if a.Setor != nil && a.Setor.Descricao != "" {
		k.setor = a.Setor.Descricao
	}
	return k
}

// Estatisticas do dashboard
type Estatisticas struct {
	TotalClientes     int64   `json:"totalClients"`
	HorasMes          float64 `json:"monthlyHours"`
	FaturamentoMes    float64 `json:"monthlyRevenue"`
	ConsultoresAtivos int     `json:"activeConsultants"`
}

// CalcularEstatisticas recebe os apontamentos do mês e o total geral de clientes
func CalcularEstatisticas(doMes []apontamento.Apontamento, totalClientes int64) Estatisticas {
	e := Estatisticas{TotalClientes: totalClientes}
	ativos := map[uint]struct{}{}
	for _, a := range doMes {
		e.HorasMes += a.TotalHoras
		e.FaturamentoMes += a.TotalValor
		ativos[a.ConsultorID] = struct{}{}
	}
	e.ConsultoresAtivos = len(ativos)
	return e
}
