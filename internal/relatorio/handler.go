package relatorio

import (
	"context"
	"net/http"
	"time"

	"github.com/KromaEnergia/api-apontamentos/internal/apontamento"
	"github.com/KromaEnergia/api-apontamentos/internal/httpx"
)

type ContadorClientes interface {
	Count(ctx context.Context) (int64, error)
}

type Handler struct {
	Apontamentos apontamento.Repository
	Clientes     ContadorClientes
	Agora        func() time.Time
}

func NewHandler(apontamentos apontamento.Repository, clientes ContadorClientes) *Handler {
	return &Handler{Apontamentos: apontamentos, Clientes: clientes, Agora: time.Now}
}

// GET /api/dashboard/stats?month=&year=
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	agora := h.Agora()
	ano, mes := agora.Year(), int(agora.Month())

	q := r.URL.Query()
	if q.Get("month") != "" && q.Get("year") != "" {
		var err error
		if ano, mes, err = apontamento.ParseMesAno(q.Get("month"), q.Get("year")); err != nil {
			httpx.Erro(w, r, err)
			return
		}
	}

	doMes, err := h.Apontamentos.ListDoMes(r.Context(), apontamento.PrefixoMes(ano, mes))
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	total, err := h.Clientes.Count(r.Context())
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, CalcularEstatisticas(doMes, total))
}

// GET /api/reports?startDate=&endDate=&clientId=&consultantId=
func (h *Handler) Relatorio(w http.ResponseWriter, r *http.Request) {
	f, err := apontamento.FiltroDaQuery(r)
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	lista, err := h.Apontamentos.ListDetalhados(r.Context(), f)
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, Gerar(lista))
}
