package tiposervico

import (
	"context"
	"errors"
	"net/http"

	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
	"github.com/KromaEnergia/api-apontamentos/internal/httpx"
	"github.com/KromaEnergia/api-apontamentos/internal/validacao"
)

type Handler struct {
	Repository Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{Repository: repo}
}

// GET /api/service-types
func (h *Handler) ListarTipos(w http.ResponseWriter, r *http.Request) {
	tipos, err := h.Repository.List(r.Context())
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if tipos == nil {
		tipos = []TipoServico{}
	}
	httpx.JSON(w, http.StatusOK, tipos)
}

// GET /api/service-types/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDDaRota(r, "id")
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	t, err := h.Repository.FindByID(r.Context(), id)
	if err != nil {
		httpx.Erro(w, r, apperr.ComRecurso(err, "Service type"))
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}

// POST /api/service-types
func (h *Handler) CriarTipo(w http.ResponseWriter, r *http.Request) {
	var req CriarTipoServicoRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if err := validacao.Validar(req); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if err := h.checarCodigo(r.Context(), 0, req.Codigo); err != nil {
		httpx.Erro(w, r, err)
		return
	}

	t := TipoServico{Codigo: req.Codigo, Descricao: req.Descricao}
	if err := h.Repository.Create(r.Context(), &t); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, t)
}

// PUT /api/service-types/{id}
func (h *Handler) AtualizarTipo(w http.ResponseWriter, r *http.Request) {
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
	if p.Codigo != nil {
		if err := h.checarCodigo(r.Context(), id, *p.Codigo); err != nil {
			httpx.Erro(w, r, err)
			return
		}
	}

	t, err := h.Repository.Update(r.Context(), id, p)
	if err != nil {
		httpx.Erro(w, r, apperr.ComRecurso(err, "Service type"))
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}

// DELETE /api/service-types/{id}
func (h *Handler) DeletarTipo(w http.ResponseWriter, r *http.Request) {
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
		httpx.Erro(w, r, apperr.NaoEncontrado("Service type"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) checarCodigo(ctx context.Context, id uint, codigo string) error {
	existente, err := h.Repository.FindByCodigo(ctx, codigo)
	if err != nil && !errors.Is(err, apperr.ErrNaoEncontrado) {
		return err
	}
	if existente != nil && existente.ID != id {
		return apperr.Duplicado("code", "Service type code already exists")
	}
	return nil
}
