package billing

import (
	"github.com/shopspring/decimal"
)

// MoneyScale decimales con los que se representan precios y totales.
const MoneyScale = 2

// MaxTotal cota exclusiva de un total de venta: NUMERIC(14,2) admite 12 dígitos enteros.
var MaxTotal = decimal.New(1, 12)

// TotalPrice calcula el total de una venta (servicio de dominio).
// Total = PrecioUnitario * Cantidad, en aritmética decimal exacta y redondeado a 2 decimales.
func TotalPrice(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyScale)
}

// HasMoneyScale indica si d no tiene más de 2 decimales significativos.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}
