package servico

import (
	"context"
	"errors"
	"net/http"

	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
	"github.com/KromaEnergia/api-apontamentos/internal/cliente"
	"github.com/KromaEnergia/api-apontamentos/internal/httpx"
	"github.com/KromaEnergia/api-apontamentos/internal/tiposervico"
	"github.com/KromaEnergia/api-apontamentos/internal/validacao"
)

// Handler precisa de clientes e tipos para validar as referências do payload
type Handler struct {
	Repository Repository
	Clientes   cliente.Repository
	Tipos      tiposervico.Repository
}

func NewHandler(repo Repository, clientes cliente.Repository, tipos tiposervico.Repository) *Handler {
	return &Handler{Repository: repo, Clientes: clientes, Tipos: tipos}
}

// GET /api/services
func (h *Handler) ListarServicos(w http.ResponseWriter, r *http.Request) {
	servicos, err := h.Repository.List(r.Context())
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, servicos)
}

// GET /api/services/by-client/{clientId}
func (h *Handler) ListarPorCliente(w http.ResponseWriter, r *http.Request) {
	clienteID, err := httpx.IDDaRota(r, "clientId")
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	servicos, err := h.Repository.ListByCliente(r.Context(), clienteID)
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if servicos == nil {
		servicos = []Servico{}
	}
	httpx.JSON(w, http.StatusOK, servicos)
}

// GET /api/services/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDDaRota(r, "id")
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	s, err := h.Repository.FindByID(r.Context(), id)
	if err != nil {
		httpx.Erro(w, r, apperr.ComRecurso(err, "Service"))
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}

// POST /api/services
func (h *Handler) CriarServico(w http.ResponseWriter, r *http.Request) {
	var req CriarServicoRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if err := validacao.Validar(req); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if err := h.checarReferencias(r.Context(), 0, &req.Codigo, &req.ClienteID, req.TipoServicoID); err != nil {
		httpx.Erro(w, r, err)
		return
	}

	s := req.Modelo()
	if err := h.Repository.Create(r.Context(), &s); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, s)
}

// PUT /api/services/{id}
func (h *Handler) AtualizarServico(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDDaRota(r, "id")
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	var p Patch
	if err := httpx.Decodificar(r, &p); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if err := validacao.Validar(p); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	tipo := p.TipoServicoID
	if tipo != nil && *tipo == 0 {
		tipo = nil
	}
	if err := h.checarReferencias(r.Context(), id, p.Codigo, p.ClienteID, tipo); err != nil {
		httpx.Erro(w, r, err)
		return
	}

	s, err := h.Repository.Update(r.Context(), id, p)
	if err != nil {
		httpx.Erro(w, r, apperr.ComRecurso(err, "Service"))
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}

// DELETE /api/services/{id}
func (h *Handler) DeletarServico(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDDaRota(r, "id")
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	ok, err := h.Repository.Delete(r.Context(), id)
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if !ok {
		httpx.Erro(w, r, apperr.NaoEncontrado("Service"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// checarReferencias valida código único, cliente e tipo existentes; nil pula a checagem
func (h *Handler) checarReferencias(ctx context.Context, id uint, codigo *string, clienteID, tipoID *uint) error {
	if codigo != nil {
		existente, err := h.Repository.FindByCodigo(ctx, *codigo)
		if err != nil && !errors.Is(err, apperr.ErrNaoEncontrado) {
			return err
		}
		if existente != nil && existente.ID != id {
			return apperr.Duplicado("code", "Service code already exists")
		}
	}
	if clienteID != nil {
		if _, err := h.Clientes.FindByID(ctx, *clienteID); err != nil {
			if errors.Is(err, apperr.ErrNaoEncontrado) {
				return apperr.Validacao("Invalid data", apperr.Issue{Path: "clientId", Message: "client not found", Code: "not_found"})
			}
			return err
		}
	}
	if tipoID != nil {
		if _, err := h.Tipos.FindByID(ctx, *tipoID); err != nil {
			if errors.Is(err, apperr.ErrNaoEncontrado) {
				return apperr.Validacao("Invalid data", apperr.Issue{Path: "serviceTypeId", Message: "service type not found", Code: "not_found"})
			}
			return err
		}
	}
	return nil
}
