package utils

import (
	"errors"
	"fmt"

	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
	"gorm.io/gorm"
)

// TraduzirErroDB converte erros do gorm nas sentinelas de apperr.
// Depende de gorm.Config{TranslateError: true} para reconhecer chave duplicada.
func TraduzirErroDB(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", apperr.ErrNaoEncontrado, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", apperr.ErrDuplicado, err)
	}
	return err
}
