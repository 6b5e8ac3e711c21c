package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		price string
		qty   int
		want  string
	}{
		{"12.50", 3, "37.5"},
		{"0.10", 3, "0.3"},
		{"19.99", 7, "139.93"},
		{"0", 5, "0"},
		{"99999999.99", 2, "199999999.98"},
	}
	for _, tt := range tests {
		got := TotalPrice(decimal.RequireFromString(tt.price), tt.qty)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s x %d = %s", tt.price, tt.qty, got)
		assert.LessOrEqual(t, -got.Exponent(), int32(MoneyScale))
	}
}

func TestHasMoneyScale(t *testing.T) {
	assert.True(t, HasMoneyScale(decimal.RequireFromString("10")))
	assert.True(t, HasMoneyScale(decimal.RequireFromString("10.5")))
	assert.True(t, HasMoneyScale(decimal.RequireFromString("10.25")))
	assert.True(t, HasMoneyScale(decimal.RequireFromString("10.250")))
	assert.False(t, HasMoneyScale(decimal.RequireFromString("10.255")))
}
