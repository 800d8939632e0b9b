package apontamento

import (
	"fmt"
	"sort"
	"strings"
)

// Filtro compõe por AND; campo zero não filtra.
// Datas comparam como texto, o que funciona para YYYY-MM-DD.
type Filtro struct {
	DataInicio  string
	DataFim     string
	ClienteID   *uint
	ConsultorID *uint
	IDs         []uint
}

// FiltroDoMes monta o intervalo ingênuo YYYY-MM-01..YYYY-MM-31, sem checar o último dia do mês
func FiltroDoMes(ano, mes int) Filtro {
	return Filtro{
		DataInicio: fmt.Sprintf("%04d-%02d-01", ano, mes),
		DataFim:    fmt.Sprintf("%04d-%02d-31", ano, mes),
	}
}

// PrefixoMes devolve "YYYY-MM", usado pelo dashboard
func PrefixoMes(ano, mes int) string {
	return fmt.Sprintf("%04d-%02d", ano, mes)
}

func (f Filtro) Aceita(a Apontamento) bool {
	if f.DataInicio != "" && a.Data < f.DataInicio {
		return false
	}
	if f.DataFim != "" && a.Data > f.DataFim {
		return false
	}
	if f.ClienteID != nil && a.ClienteID != *f.ClienteID {
		return false
	}
	if f.ConsultorID != nil && a.ConsultorID != *f.ConsultorID {
		return false
	}
	if len(f.IDs) > 0 {
		for _, id := range f.IDs {
			if id == a.ID {
				return true
			}
		}
		return false
	}
	return true
}

// DoMes indica se a data tem o prefixo "YYYY-MM"
func DoMes(a Apontamento, prefixo string) bool {
	return strings.HasPrefix(a.Data, prefixo+"-")
}

// Ordenar coloca os mais recentes primeiro; empate por id crescente
func Ordenar(lista []Apontamento) {
	sort.SliceStable(lista, func(i, j int) bool {
		if lista[i].Data != lista[j].Data {
			return lista[i].Data > lista[j].Data
		}
		return lista[i].ID < lista[j].ID
	})
}
