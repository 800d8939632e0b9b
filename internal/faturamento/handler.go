package faturamento

import (
	"context"
	"fmt"
	"net/http"

	"github.com/KromaEnergia/api-apontamentos/internal/apontamento"
	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
	"github.com/KromaEnergia/api-apontamentos/internal/cliente"
	"github.com/KromaEnergia/api-apontamentos/internal/httpx"
	"github.com/KromaEnergia/api-apontamentos/internal/validacao"
)

type BuscadorCliente interface {
	FindByID(ctx context.Context, id uint) (*cliente.Cliente, error)
}

type Handler struct {
	Apontamentos apontamento.Repository
	Clientes     BuscadorCliente
}

func NewHandler(apontamentos apontamento.Repository, clientes BuscadorCliente) *Handler {
	return &Handler{Apontamentos: apontamentos, Clientes: clientes}
}

// POST /api/billing/summary
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	res, err := h.montar(r)
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// POST /api/billing/generate-pdf
func (h *Handler) GerarPDF(w http.ResponseWriter, r *http.Request) {
	res, err := h.montar(r)
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	data, err := GerarPDF(res)
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	nome := fmt.Sprintf("faturamento-%s-%s-%s.pdf", res.Cliente.Codigo, res.DataInicio, res.DataFim)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+nome+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) montar(r *http.Request) (Resumo, error) {
	var req Requisicao
	if err := httpx.Decodificar(r, &req); err != nil {
		return Resumo{}, err
	}
	if err := validacao.Validar(req); err != nil {
		return Resumo{}, err
	}

	c, err := h.Clientes.FindByID(r.Context(), req.ClienteID)
	if err != nil {
		return Resumo{}, apperr.ComRecurso(err, "Client")
	}
	lista, err := h.Apontamentos.ListDetalhados(r.Context(), req.Filtro())
	if err != nil {
		return Resumo{}, err
	}
	return Montar(req, *c, lista), nil
}
