package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinelas devolvidas pelos repositórios
var (
	ErrNaoEncontrado = errors.New("registro não encontrado")
	ErrDuplicado     = errors.New("valor único já cadastrado")
)

// Issue descreve um problema de validação em um campo do payload
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Erro é o erro de aplicação que o handler converte em resposta HTTP
type Erro struct {
	Status   int
	Mensagem string
	Issues   []Issue
	Err      error
}

func (e *Erro) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Mensagem, e.Err)
	}
	return e.Mensagem
}

func (e *Erro) Unwrap() error {
	return e.Err
}

func Validacao(mensagem string, issues ...Issue) *Erro {
	return &Erro{Status: http.StatusBadRequest, Mensagem: mensagem, Issues: issues}
}

func NaoEncontrado(recurso string) *Erro {
	return &Erro{Status: http.StatusNotFound, Mensagem: recurso + " not found", Err: ErrNaoEncontrado}
}

func NaoAutorizado(mensagem string) *Erro {
	return &Erro{Status: http.StatusUnauthorized, Mensagem: mensagem}
}

func MuitasRequisicoes() *Erro {
	return &Erro{Status: http.StatusTooManyRequests, Mensagem: "Too many requests"}
}

func Interno(err error) *Erro {
	return &Erro{Status: http.StatusInternalServerError, Mensagem: "Internal server error", Err: err}
}

// Duplicado monta o 400 de código (ou CNPJ) já existente
func Duplicado(campo, mensagem string) *Erro {
	return &Erro{
		Status:   http.StatusBadRequest,
		Mensagem: mensagem,
		Issues:   []Issue{{Path: campo, Message: mensagem, Code: "duplicate"}},
		Err:      ErrDuplicado,
	}
}

// Converter traduz qualquer erro para *Erro, caindo em 500 quando não reconhecido
func Converter(err error) *Erro {
	var ae *Erro
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, ErrNaoEncontrado):
		return &Erro{Status: http.StatusNotFound, Mensagem: "Not found", Err: err}
	case errors.Is(err, ErrDuplicado):
		return &Erro{Status: http.StatusBadRequest, Mensagem: "Duplicate value", Err: err,
			Issues: []Issue{{Path: "code", Message: "Duplicate value", Code: "duplicate"}}}
	}
	return Interno(err)
}

// ComRecurso troca ErrNaoEncontrado por um 404 com o nome do recurso
func ComRecurso(err error, recurso string) error {
	var ae *Erro
	if errors.Is(err, ErrNaoEncontrado) && !errors.As(err, &ae) {
		return NaoEncontrado(recurso)
	}
	return err
}
