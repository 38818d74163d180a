package forecasting

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/pkg/apiErrors"
)

var (
	ErrUpstreamFailure = errors.New("falha ao buscar pedidos na origem")
	ErrInvalidHorizon  = domain.ErrInvalidHorizon
	ErrInvalidLimit    = errors.New("limite inválido")
)

// ForecastError é um erro da previsão com o código da API e a causa original
type ForecastError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Source  string // Origem de pedidos envolvida
	Cause   error  // Erro retornado pela origem
	Details string
}

func (e *ForecastError) Error() string {
	msg := e.Err.Error()
	if e.Source != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Source)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause.Error())
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

// Unwrap retorna o erro subjacente
func (e *ForecastError) Unwrap() error {
	return e.Err
}

// NewUpstreamError envolve a falha da origem de pedidos
func NewUpstreamError(source string, cause error) *ForecastError {
	return &ForecastError{
		Err:    ErrUpstreamFailure,
		Code:   apiErrors.ErrExternalService,
		Source: source,
		Cause:  cause,
	}
}

// IsUpstreamError verifica se o erro veio da origem de pedidos
func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstreamFailure)
}
