package faturamento

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/KromaEnergia/api-apontamentos/internal/apontamento"
	"github.com/KromaEnergia/api-apontamentos/internal/cliente"
	"github.com/KromaEnergia/api-apontamentos/internal/consultor"
	"github.com/KromaEnergia/api-apontamentos/internal/memoria"
	"github.com/KromaEnergia/api-apontamentos/internal/servico"
	"github.com/KromaEnergia/api-apontamentos/internal/setor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	h       *Handler
	cliente cliente.Cliente
	ids     []uint
}

func novoFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	st := memoria.NewStore()

	c := cliente.Cliente{Codigo: "C1", Nome: "Kroma Energia", CNPJ: "12", Email: "f@kroma.com"}
	require.NoError(t, st.Clientes().Create(ctx, &c))
	k := consultor.Consultor{Codigo: "K1", Nome: "João"}
	require.NoError(t, st.Consultores().Create(ctx, &k))
	sv := servico.Servico{Codigo: "S1", ClienteID: c.ID, Descricao: "Implantação", ValorHora: "150.00"}
	require.NoError(t, st.Servicos().Create(ctx, &sv))
	se := setor.Setor{Codigo: "F", ClienteID: &c.ID, Descricao: "Financeiro"}
	require.NoError(t, st.Setores().Create(ctx, &se))

	f := fixture{h: NewHandler(st.Apontamentos(), st.Clientes()), cliente: c}
	for i, d := range []string{"2024-05-02", "2024-05-03", "2024-06-01"} {
		a := apontamento.Apontamento{
			Data: d, ConsultorID: k.ID, ClienteID: c.ID, ServicoID: sv.ID,
			HoraInicio: "08:00", HoraFim: "10:00", Descricao: "Reunião de alinhamento",
		}
		if i == 0 {
			a.SetorID = &se.ID
		}
		require.NoError(t, st.Apontamentos().Create(ctx, &a))
		f.ids = append(f.ids, a.ID)
	}
	return f
}

func corpo(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestResumoAgrupa(t *testing.T) {
	f := novoFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/api/billing/summary", corpo(t, map[string]any{
		"clientId": f.cliente.ID, "startDate": "2024-05-01", "endDate": "2024-05-31",
	}))
	w := httptest.NewRecorder()
	f.h.Resumo(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res Resumo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, Detalhado, res.TipoRelatorio)
	assert.Equal(t, 2, res.TotalApontamentos)
	assert.Equal(t, 4.0, res.TotalHoras)
	assert.Equal(t, 600.0, res.TotalValor)
	require.Len(t, res.Grupos, 2)
	// lista vem por data decrescente
	assert.Equal(t, "Sem Setor", res.Grupos[0].Setor)
	assert.Equal(t, "Financeiro", res.Grupos[1].Setor)
	assert.Len(t, res.Apontamentos, 2)
}

func TestResumoSinteticoComSelecao(t *testing.T) {
	f := novoFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/api/billing/summary", corpo(t, map[string]any{
		"clientId": f.cliente.ID, "startDate": "2024-05-01", "endDate": "2024-06-30",
		"entryIds": []uint{f.ids[0], f.ids[2]}, "reportType": "synthetic",
	}))
	w := httptest.NewRecorder()
	f.h.Resumo(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res Resumo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 2, res.TotalApontamentos)
	assert.Empty(t, res.Apontamentos)
	assert.NotContains(t, w.Body.String(), `"entries":[`)
}

func TestResumoValidacao(t *testing.T) {
	f := novoFixture(t)
	casos := []map[string]any{
		{"startDate": "2024-05-01", "endDate": "2024-05-31"},
		{"clientId": f.cliente.ID, "startDate": "01/05/2024", "endDate": "2024-05-31"},
		{"clientId": f.cliente.ID, "startDate": "2024-05-31", "endDate": "2024-05-01"},
		{"clientId": f.cliente.ID, "startDate": "2024-05-01", "endDate": "2024-05-31", "reportType": "mensal"},
	}
	for i, c := range casos {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			w := httptest.NewRecorder()
			f.h.Resumo(w, httptest.NewRequest(http.MethodPost, "/api/billing/summary", corpo(t, c)))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestResumoClienteInexistente(t *testing.T) {
	f := novoFixture(t)
	w := httptest.NewRecorder()
	f.h.Resumo(w, httptest.NewRequest(http.MethodPost, "/api/billing/summary", corpo(t, map[string]any{
		"clientId": 99, "startDate": "2024-05-01", "endDate": "2024-05-31",
	})))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Client not found")
}

func TestGerarPDF(t *testing.T) {
	f := novoFixture(t)
	for _, tipo := range []string{Detalhado, Sintetico} {
		t.Run(tipo, func(t *testing.T) {
			w := httptest.NewRecorder()
			f.h.GerarPDF(w, httptest.NewRequest(http.MethodPost, "/api/billing/generate-pdf", corpo(t, map[string]any{
				"clientId": f.cliente.ID, "startDate": "2024-05-01", "endDate": "2024-05-31", "reportType": tipo,
			})))
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Header().Get("Content-Disposition"), "faturamento-C1-2024-05-01-2024-05-31.pdf")
			assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
		})
	}
}

func TestGerarPDFSemApontamentos(t *testing.T) {
	data, err := GerarPDF(Resumo{Cliente: cliente.Cliente{Nome: "Vazio"}, TipoRelatorio: Detalhado})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
