package apontamento

import (
	"net/http"
	"strconv"
	"time"

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

/* ===================== LISTAGENS ===================== */

// GET /api/time-entries?month=&year=
func (h *Handler) ListarApontamentos(w http.ResponseWriter, r *http.Request) {
	var f Filtro
	q := r.URL.Query()
	if q.Get("month") != "" && q.Get("year") != "" {
		ano, mes, err := ParseMesAno(q.Get("month"), q.Get("year"))
		if err != nil {
			httpx.Erro(w, r, err)
			return
		}
		f = FiltroDoMes(ano, mes)
	}
	h.responderLista(w, r, f)
}

// GET /api/time-entries/filtered?startDate=&endDate=&clientId=&consultantId=
func (h *Handler) ListarFiltrados(w http.ResponseWriter, r *http.Request) {
	f, err := FiltroDaQuery(r)
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	h.responderLista(w, r, f)
}

// GET /api/time-entries/billing?clientId=&startDate=&endDate=
func (h *Handler) ListarParaFaturamento(w http.ResponseWriter, r *http.Request) {
	f, err := FiltroDaQuery(r)
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	f.ConsultorID = nil
	h.responderLista(w, r, f)
}

func (h *Handler) responderLista(w http.ResponseWriter, r *http.Request, f Filtro) {
	lista, err := h.Repository.ListDetalhados(r.Context(), f)
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, lista)
}

/* ===================== CRUD ===================== */

// GET /api/time-entries/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDDaRota(r, "id")
	if err != nil {
		httpx.Erro(w, r, err)
		return
	}
	a, err := h.Repository.FindByID(r.Context(), id)
	if err != nil {
		httpx.Erro(w, r, apperr.ComRecurso(err, "Time entry"))
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

// POST /api/time-entries
func (h *Handler) CriarApontamento(w http.ResponseWriter, r *http.Request) {
	var req CriarApontamentoRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	if err := validacao.Validar(req); err != nil {
		httpx.Erro(w, r, err)
		return
	}

	a := req.Modelo()
	if err := h.Repository.Create(r.Context(), &a); err != nil {
		httpx.Erro(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, a)
}

// PUT /api/time-entries/{id}
func (h *Handler) AtualizarApontamento(w http.ResponseWriter, r *http.Request) {
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

	a, err := h.Repository.Update(r.Context(), id, p)
	if err != nil {
		httpx.Erro(w, r, apperr.ComRecurso(err, "Time entry"))
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

// DELETE /api/time-entries/{id}
func (h *Handler) DeletarApontamento(w http.ResponseWriter, r *http.Request) {
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
		httpx.Erro(w, r, apperr.NaoEncontrado("Time entry"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* ===================== QUERY ===================== */

// FiltroDaQuery lê startDate, endDate, clientId e consultantId; cada um é opcional
func FiltroDaQuery(r *http.Request) (Filtro, error) {
	q := r.URL.Query()
	f := Filtro{DataInicio: q.Get("startDate"), DataFim: q.Get("endDate")}
	for campo, v := range map[string]string{"startDate": f.DataInicio, "endDate": f.DataFim} {
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return Filtro{}, apperr.Validacao("Invalid "+campo, apperr.Issue{Path: campo, Message: "must be a date in YYYY-MM-DD format", Code: "datetime"})
		}
	}

	var err error
	if f.ClienteID, err = httpx.IDOpcional(r, "clientId"); err != nil {
		return Filtro{}, err
	}
	if f.ConsultorID, err = httpx.IDOpcional(r, "consultantId"); err != nil {
		return Filtro{}, err
	}
	return f, nil
}

// ParseMesAno valida month (1..12) e year (4 dígitos)
func ParseMesAno(mesStr, anoStr string) (ano, mes int, err error) {
	mes, errMes := strconv.Atoi(mesStr)
	if errMes != nil || mes < 1 || mes > 12 {
		return 0, 0, apperr.Validacao("Invalid month", apperr.Issue{Path: "month", Message: "must be between 1 and 12", Code: "invalid"})
	}
	ano, errAno := strconv.Atoi(anoStr)
	if errAno != nil || ano < 1 || ano > 9999 {
		return 0, 0, apperr.Validacao("Invalid year", apperr.Issue{Path: "year", Message: "must be a 4-digit year", Code: "invalid"})
	}
	return ano, mes, nil
}
