package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type ctxKey string

const ctxRequestID ctxKey = "requestID"

// ComRequestID guarda o id da requisição no contexto
func ComRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxRequestID, id)
}

// RequestID devolve o id da requisição ou "" quando ausente
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}

// corpoErro é o formato de toda resposta de erro
type corpoErro struct {
	Message string         `json:"message"`
	Errors  []apperr.Issue `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("falha ao serializar resposta")
	}
}

// Erro converte err para status + corpo JSON; 5xx é logado e a mensagem original nunca vaza
func Erro(w http.ResponseWriter, r *http.Request, err error) {
	ae := apperr.Converter(err)
	if ae.Status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", RequestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("erro interno")
	}
	JSON(w, ae.Status, corpoErro{Message: ae.Mensagem, Errors: ae.Issues})
}

// Decodificar lê o corpo JSON; corpo vazio ou malformado vira 400
func Decodificar(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validacao("Invalid data", apperr.Issue{Path: "body", Message: "body is required", Code: "required"})
		}
		return apperr.Validacao("Invalid data", apperr.Issue{Path: "body", Message: err.Error(), Code: "invalid_json"})
	}
	return nil
}

// IDDaRota lê um id numérico positivo da rota
func IDDaRota(r *http.Request, nome string) (uint, error) {
	return ParseID(mux.Vars(r)[nome], nome)
}

func ParseID(bruto, campo string) (uint, error) {
	id, err := strconv.ParseUint(bruto, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validacao("Invalid "+campo, apperr.Issue{Path: campo, Message: "must be a positive integer", Code: "invalid_id"})
	}
	return uint(id), nil
}

// IDOpcional lê um id de query string; ausente devolve nil
func IDOpcional(r *http.Request, campo string) (*uint, error) {
	bruto := r.URL.Query().Get(campo)
	if bruto == "" {
		return nil, nil
	}
	id, err := ParseID(bruto, campo)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
