package apontamento

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/KromaEnergia/api-apontamentos/internal/validacao"
)

var (
	ErrHorarioInvalido   = errors.New("horário inválido, use HH:MM")
	ErrValorHoraInvalido = errors.New("valor-hora inválido")
)

// Calculo é o resultado derivado de um apontamento
type Calculo struct {
	Horas float64
	Valor float64
}

// ParaMinutos converte "HH:MM" em minutos desde a meia-noite
func ParaMinutos(hora string) (int, error) {
	if !validacao.HoraValida(hora) {
		return 0, fmt.Errorf("%w: %q", ErrHorarioInvalido, hora)
	}
	h, _ := strconv.Atoi(hora[:2])
	m, _ := strconv.Atoi(hora[3:])
	return h*60 + m, nil
}

// CalcularHorasEValor desconta o intervalo só quando os dois extremos existem.
// Jornada invertida (fim antes do início) resulta em zero; não há virada de dia.
// Horas e valor saem arredondados em duas casas, como as colunas decimais.
func CalcularHorasEValor(inicio, fim string, inicioIntervalo, fimIntervalo *string, valorHora string) (Calculo, error) {
	ini, err := ParaMinutos(inicio)
	if err != nil {
		return Calculo{}, err
	}
	f, err := ParaMinutos(fim)
	if err != nil {
		return Calculo{}, err
	}

	trabalho := f - ini
	if presente(inicioIntervalo) && presente(fimIntervalo) {
		bi, err := ParaMinutos(*inicioIntervalo)
		if err != nil {
			return Calculo{}, err
		}
		bf, err := ParaMinutos(*fimIntervalo)
		if err != nil {
			return Calculo{}, err
		}
		trabalho -= bf - bi
	}
	if trabalho < 0 {
		trabalho = 0
	}

	taxa, err := strconv.ParseFloat(valorHora, 64)
	if err != nil || taxa < 0 || math.IsNaN(taxa) || math.IsInf(taxa, 0) {
		return Calculo{}, fmt.Errorf("%w: %q", ErrValorHoraInvalido, valorHora)
	}

	horas := float64(trabalho) / 60
	return Calculo{Horas: arredondar(horas), Valor: arredondar(horas * taxa)}, nil
}

func presente(s *string) bool {
	return s != nil && *s != ""
}

func arredondar(v float64) float64 {
	return math.Round(v*100) / 100
}
