package consultor

import (
	"context"
	"errors"
	"net/http"

	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
	"github.com/KromaEnergia/api-apontamentos/internal/auth"
	"github.com/KromaEnergia/api-apontamentos/internal/httpx"
	"github.com/KromaEnergia/api-apontamentos/internal/utils"
	"github.com/KromaEnergia/api-apontamentos/internal/validacao"
)

const msgCredenciaisInvalidas = "Código ou senha inválidos"

// EmissorToken gera o token devolvido no login
type EmissorToken interface {
	GerarToken(consultorID uint) (string, error)
}

// Handler encapsula repository e emissor de token
type Handler struct {
	Repository Repository
	Tokens     EmissorToken
}

func NewHandler(repo Repository, tokens EmissorToken) *Handler {
	return &Handler{Repository: repo, Tokens: tokens}
}

// POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if err := validacao.Validar(req); err != nil {
		httpx.Erro(w, r, err)
		return
	}

	c, err := h.Repository.FindByCodigo(r.Context(), req.Codigo)
	if err != nil {
		if errors.Is(err, apperr.ErrNaoEncontrado) {
			httpx.Erro(w, r, apperr.NaoAutorizado(msgCredenciaisInvalidas))
			return
		}
		httpx.Erro(w, r, err)
		return
	}
	if !utils.CheckSenha(c.Senha, req.Senha) {
		httpx.Erro(w, r, apperr.NaoAutorizado(msgCredenciaisInvalidas))
		return
	}

	token, err := h.Tokens.GerarToken(c.ID)
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, LoginResponse{Consultor: *c, Mensagem: "Login realizado com sucesso", Token: token})
}

// GET /api/me (exige token)
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.ConsultorID(r.Context())
	if !ok {
		httpx.Erro(w, r, apperr.NaoAutorizado("Token ausente"))
		return
	}
	c, err := h.Repository.FindByID(r.Context(), id)
	if err != nil {
		httpx.Erro(w, r, apperr.ComRecurso(err, "Consultant"))
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// GET /api/consultants
func (h *Handler) ListarConsultores(w http.ResponseWriter, r *http.Request) {
	consultores, err := h.Repository.List(r.Context())
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if consultores == nil {
		consultores = []Consultor{}
	}
	httpx.JSON(w, http.StatusOK, consultores)
}

// GET /api/consultants/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDDaRota(r, "id")
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	c, err := h.Repository.FindByID(r.Context(), id)
	if err != nil {
		httpx.Erro(w, r, apperr.ComRecurso(err, "Consultant"))
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// POST /api/consultants; sem senha no payload o servidor gera uma temporária
func (h *Handler) CriarConsultor(w http.ResponseWriter, r *http.Request) {
	var req CriarConsultorRequest
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

	senha, temporaria := req.Senha, ""
	if senha == "" {
		gerada, err := utils.GerarSenhaTemporaria()
		if err != nil {
			httpx.Erro(w, r, err)
			return
		}
		senha, temporaria = gerada, gerada
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}

	c := Consultor{
		Codigo:                req.Codigo,
		Nome:                  req.Nome,
		Senha:                 hash,
		PrecisaRedefinirSenha: temporaria != "",
	}
	if err := h.Repository.Create(r.Context(), &c); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, CriarConsultorResponse{Consultor: c, SenhaTemporaria: temporaria})
}

// PUT /api/consultants/{id}
func (h *Handler) AtualizarConsultor(w http.ResponseWriter, r *http.Request) {
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
	if p.Senha != nil {
		hash, err := utils.HashSenha(*p.Senha)
		if err != nil {
			httpx.Erro(w, r, err)
			return
		}
		p.Senha = &hash
	}

	c, err := h.Repository.Update(r.Context(), id, p)
	if err != nil {
		httpx.Erro(w, r, apperr.ComRecurso(err, "Consultant"))
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// DELETE /api/consultants/{id}
func (h *Handler) DeletarConsultor(w http.ResponseWriter, r *http.Request) {
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
		httpx.Erro(w, r, apperr.NaoEncontrado("Consultant"))
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
		return apperr.Duplicado("code", "Consultant code already exists")
	}
	return nil
}
