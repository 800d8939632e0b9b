package setor

import (
	"context"
	"errors"
	"net/http"

	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
	"github.com/KromaEnergia/api-apontamentos/internal/cliente"
	"github.com/KromaEnergia/api-apontamentos/internal/httpx"
	"github.com/KromaEnergia/api-apontamentos/internal/validacao"
)

type Handler struct {
	Repository Repository
	Clientes   cliente.Repository
}

func NewHandler(repo Repository, clientes cliente.Repository) *Handler {
	return &Handler{Repository: repo, Clientes: clientes}
}

// GET /api/sectors
func (h *Handler) ListarSetores(w http.ResponseWriter, r *http.Request) {
	setores, err := h.Repository.List(r.Context())
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if setores == nil {
		setores = []Setor{}
	}
	httpx.JSON(w, http.StatusOK, setores)
}

// GET /api/sectors/by-client/{clientId}
func (h *Handler) ListarPorCliente(w http.ResponseWriter, r *http.Request) {
	clienteID, err := httpx.IDDaRota(r, "clientId")
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	setores, err := h.Repository.ListByCliente(r.Context(), clienteID)
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if setores == nil {
		setores = []Setor{}
	}
	httpx.JSON(w, http.StatusOK, setores)
}

// GET /api/sectors/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDDaRota(r, "id")
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	s, err := h.Repository.FindByID(r.Context(), id)
	if err != nil {
		httpx.Erro(w, r, apperr.ComRecurso(err, "Sector"))
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}

// POST /api/sectors
func (h *Handler) CriarSetor(w http.ResponseWriter, r *http.Request) {
	var req CriarSetorRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if err := validacao.Validar(req); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if err := h.checarReferencias(r.Context(), 0, &req.Codigo, req.ClienteID); err != nil {
		httpx.Erro(w, r, err)
		return
	}

	s := Setor{Codigo: req.Codigo, ClienteID: req.ClienteID, Descricao: req.Descricao}
	if err := h.Repository.Create(r.Context(), &s); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, s)
}

// PUT /api/sectors/{id}
func (h *Handler) AtualizarSetor(w http.ResponseWriter, r *http.Request) {
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
	clienteID := p.ClienteID
	if clienteID != nil && *clienteID == 0 {
		clienteID = nil
	}
	if err := h.checarReferencias(r.Context(), id, p.Codigo, clienteID); err != nil {
		httpx.Erro(w, r, err)
		return
	}

	s, err := h.Repository.Update(r.Context(), id, p)
	if err != nil {
		httpx.Erro(w, r, apperr.ComRecurso(err, "Sector"))
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}

// DELETE /api/sectors/{id}
func (h *Handler) DeletarSetor(w http.ResponseWriter, r *http.Request) {
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
		httpx.Erro(w, r, apperr.NaoEncontrado("Sector"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) checarReferencias(ctx context.Context, id uint, codigo *string, clienteID *uint) error {
	if codigo != nil {
		existente, err := h.Repository.FindByCodigo(ctx, *codigo)
		if err != nil && !errors.Is(err, apperr.ErrNaoEncontrado) {
			return err
		}
		if existente != nil && existente.ID != id {
			return apperr.Duplicado("code", "Sector code already exists")
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
	return nil
}
