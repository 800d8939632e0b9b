package cliente

import (
	"context"
	"errors"
	"net/http"

	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
	"github.com/KromaEnergia/api-apontamentos/internal/httpx"
	"github.com/KromaEnergia/api-apontamentos/internal/validacao"
)

// Alertador é avisado quando alguém tenta cadastrar um CNPJ já existente
type Alertador interface {
	CNPJDuplicado(ctx context.Context, cnpj string)
}

// Handler encapsula o repository de clientes
type Handler struct {
	Repository Repository
	Alerta     Alertador
}

// NewHandler retorna um handler inicializado; alerta pode ser nil
func NewHandler(repo Repository, alerta Alertador) *Handler {
	return &Handler{Repository: repo, Alerta: alerta}
}

// GET /api/clients
func (h *Handler) ListarClientes(w http.ResponseWriter, r *http.Request) {
	clientes, err := h.Repository.List(r.Context())
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if clientes == nil {
		clientes = []Cliente{}
	}
	httpx.JSON(w, http.StatusOK, clientes)
}

// GET /api/clients/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDDaRota(r, "id")
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	c, err := h.Repository.FindByID(r.Context(), id)
	if err != nil {
		httpx.Erro(w, r, apperr.ComRecurso(err, "Client"))
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// POST /api/clients
func (h *Handler) CriarCliente(w http.ResponseWriter, r *http.Request) {
	var req CriarClienteRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if err := validacao.Validar(req); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if err := h.checarUnicidade(r.Context(), 0, &req.Codigo, &req.CNPJ); err != nil {
		httpx.Erro(w, r, err)
		return
	}

	c := req.Modelo()
	if err := h.Repository.Create(r.Context(), &c); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// PUT /api/clients/{id}
func (h *Handler) AtualizarCliente(w http.ResponseWriter, r *http.Request) {
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
	if err := h.checarUnicidade(r.Context(), id, p.Codigo, p.CNPJ); err != nil {
		httpx.Erro(w, r, err)
		return
	}

	c, err := h.Repository.Update(r.Context(), id, p)
	if err != nil {
		httpx.Erro(w, r, apperr.ComRecurso(err, "Client"))
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// DELETE /api/clients/{id}
func (h *Handler) DeletarCliente(w http.ResponseWriter, r *http.Request) {
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
		httpx.Erro(w, r, apperr.NaoEncontrado("Client"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// checarUnicidade rejeita código/CNPJ de outro cliente; id 0 significa cadastro novo
func (h *Handler) checarUnicidade(ctx context.Context, id uint, codigo, cnpj *string) error {
	if codigo != nil {
		existente, err := h.Repository.FindByCodigo(ctx, *codigo)
		if err != nil && !errors.Is(err, apperr.ErrNaoEncontrado) {
			return err
		}
		if existente != nil && existente.ID != id {
			return apperr.Duplicado("code", "Client code already exists")
		}
	}
	if cnpj != nil {
		existente, err := h.Repository.FindByCNPJ(ctx, *cnpj)
		if err != nil && !errors.Is(err, apperr.ErrNaoEncontrado) {
			return err
		}
		if existente != nil && existente.ID != id {
			if h.Alerta != nil {
				h.Alerta.CNPJDuplicado(ctx, *cnpj)
			}
			return apperr.Duplicado("cnpj", "Client CNPJ already exists")
		}
	}
	return nil
}
