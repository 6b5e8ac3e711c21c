package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/billing"
)

// Money importe monetario de salida. Se serializa siempre como string con dos
// decimales ("12.50"), igual que la columna NUMERIC de origen.
type Money struct {
	decimal.Decimal
}

// NewMoney envuelve d para la respuesta.
func NewMoney(d decimal.Decimal) Money { return Money{Decimal: d} }

// MarshalJSON fija la escala a MoneyScale.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(billing.MoneyScale) + `"`), nil
}
