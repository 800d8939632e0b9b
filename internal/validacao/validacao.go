package validacao

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
	"github.com/go-playground/validator/v10"
)

var (
	reHora      = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	reValorHora = regexp.MustCompile(`^\d+(\.\d+)?$`)

	once     sync.Once
	validate *validator.Validate
)

// Regras é implementado por payloads com checagens entre campos
type Regras interface {
	ValidarRegras() []apperr.Issue
}

func instancia() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// issues usam o nome do campo no JSON
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			nome := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if nome == "-" {
				return ""
			}
			return nome
		})
		_ = validate.RegisterValidation("hora", func(fl validator.FieldLevel) bool {
			return HoraValida(fl.Field().String())
		})
		_ = validate.RegisterValidation("valorhora", func(fl validator.FieldLevel) bool {
			return ValorHoraValido(fl.Field().String())
		})
	})
	return validate
}

// HoraValida aceita "HH:MM" de 00:00 a 23:59
func HoraValida(s string) bool {
	return reHora.MatchString(s)
}

// ValorHoraValido aceita decimal não negativo em texto, ex. "150.00"
func ValorHoraValido(s string) bool {
	if !reValorHora.MatchString(s) {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// Validar aplica as tags `validate` e, se houver, as regras entre campos
func Validar(s any) error {
	if err := instancia().Struct(s); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return apperr.Interno(err)
		}
		issues := make([]apperr.Issue, 0, len(ves))
		for _, fe := range ves {
			issues = append(issues, apperr.Issue{Path: caminho(fe), Message: mensagem(fe), Code: fe.Tag()})
		}
		return apperr.Validacao("Invalid data", issues...)
	}
	if r, ok := s.(Regras); ok {
		if issues := r.ValidarRegras(); len(issues) > 0 {
			return apperr.Validacao("Invalid data", issues...)
		}
	}
	return nil
}

// caminho remove o nome do struct raiz: "req.startTime" -> "startTime"
func caminho(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func mensagem(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "hora":
		return "must be a time in HH:MM format"
	case "valorhora":
		return "must be a non-negative decimal"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "invalid value"
}
