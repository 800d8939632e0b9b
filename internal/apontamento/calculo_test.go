package apontamento

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s(v string) *string { return &v }

func TestCalcularHorasEValor(t *testing.T) {
	tests := []struct {
		name           string
		inicio, fim    string
		intIni, intFim *string
		taxa           string
		horas, valor   float64
	}{
		{"jornada com almoço", "09:00", "17:00", s("12:00"), s("13:00"), "100.00", 7, 700},
		{"sem intervalo", "08:30", "12:00", nil, nil, "80", 3.5, 280},
		{"jornada invertida", "14:00", "13:00", nil, nil, "100.00", 0, 0},
		{"intervalo incompleto é ignorado", "09:00", "11:00", s("10:00"), nil, "50", 2, 100},
		{"intervalo vazio é ignorado", "09:00", "11:00", s(""), s(""), "50", 2, 100},
		{"intervalo maior que a jornada", "09:00", "10:00", s("08:00"), s("12:00"), "50", 0, 0},
		{"taxa zero", "09:00", "10:00", nil, nil, "0", 1, 0},
		{"fração arredondada", "09:00", "09:20", nil, nil, "100", 0.33, 33.33},
		{"dia inteiro", "00:00", "23:59", nil, nil, "60", 23.98, 1439},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := CalcularHorasEValor(tt.inicio, tt.fim, tt.intIni, tt.intFim, tt.taxa)
			require.NoError(t, err)
			assert.InDelta(t, tt.horas, c.Horas, 0.001)
			assert.InDelta(t, tt.valor, c.Valor, 0.001)
		})
	}
}

func TestCalcularSemIntervaloEhDiferencaSimples(t *testing.T) {
	for ini := 0; ini < 24*60; ini += 97 {
		for fim := ini; fim < 24*60; fim += 131 {
			inicio := fmt.Sprintf("%02d:%02d", ini/60, ini%60)
			final := fmt.Sprintf("%02d:%02d", fim/60, fim%60)
			c, err := CalcularHorasEValor(inicio, final, nil, nil, "10")
			require.NoError(t, err)
			esperado := float64(fim-ini) / 60
			assert.InDelta(t, esperado, c.Horas, 0.005, "%s-%s", inicio, final)
			assert.InDelta(t, esperado*10, c.Valor, 0.005, "%s-%s", inicio, final)
		}
	}
}

func TestCalcularErros(t *testing.T) {
	_, err := CalcularHorasEValor("9:00", "17:00", nil, nil, "100")
	assert.True(t, errors.Is(err, ErrHorarioInvalido))

	_, err = CalcularHorasEValor("09:00", "25:00", nil, nil, "100")
	assert.True(t, errors.Is(err, ErrHorarioInvalido))

	_, err = CalcularHorasEValor("09:00", "17:00", s("12:00"), s("xx"), "100")
	assert.True(t, errors.Is(err, ErrHorarioInvalido))

	_, err = CalcularHorasEValor("09:00", "17:00", nil, nil, "-5")
	assert.True(t, errors.Is(err, ErrValorHoraInvalido))

	_, err = CalcularHorasEValor("09:00", "17:00", nil, nil, "abc")
	assert.True(t, errors.Is(err, ErrValorHoraInvalido))
}

func TestParaMinutos(t *testing.T) {
	m, err := ParaMinutos("13:45")
	require.NoError(t, err)
	assert.Equal(t, 13*60+45, m)
}
