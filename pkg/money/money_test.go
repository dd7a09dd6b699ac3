package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/ruanmp/livraria-pos/pkg/money"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestToCurrency_MeioParaCima(t *testing.T) {
	assert.True(t, dec("10.005").Round(2).Equal(money.ToCurrency(dec("10.005"))))
	assert.Equal(t, "10.01", money.ToCurrency(dec("10.005")).StringFixed(2))
	assert.Equal(t, "10.00", money.ToCurrency(dec("10.004")).StringFixed(2))
}

func TestFloorToCent_Trunca(t *testing.T) {
	assert.Equal(t, "3.33", money.FloorToCent(dec("3.3399")).StringFixed(2),
		"parcelas intermediárias truncam, não arredondam")
	assert.Equal(t, "8.00", money.FloorToCent(dec("8.00")).StringFixed(2))
}

func TestFloorToCent_NegativoViraZero(t *testing.T) {
	assert.True(t, money.FloorToCent(dec("-1.50")).IsZero())
}

func TestPercentageToAmount(t *testing.T) {
	assert.Equal(t, "25.00", money.PercentageToAmount(dec("250"), dec("10")).StringFixed(2))
	// percentual acima de 100 é limitado a 100
	assert.Equal(t, "250.00", money.PercentageToAmount(dec("250"), dec("150")).StringFixed(2))
	// percentual negativo vira 0
	assert.True(t, money.PercentageToAmount(dec("250"), dec("-5")).IsZero())
	// base não positiva retorna 0
	assert.True(t, money.PercentageToAmount(decimal.Zero, dec("10")).IsZero())
}

func TestAmountToPercentage(t *testing.T) {
	assert.Equal(t, "10.00", money.AmountToPercentage(dec("250"), dec("25")).StringFixed(2))
	// valor acima da base é limitado à base (100%)
	assert.Equal(t, "100.00", money.AmountToPercentage(dec("250"), dec("300")).StringFixed(2))
	// base zero retorna 0
	assert.True(t, money.AmountToPercentage(decimal.Zero, dec("25")).IsZero())
}

func TestClampAmount(t *testing.T) {
	assert.Equal(t, "0.00", money.ClampAmount(dec("100"), dec("-1")).StringFixed(2))
	assert.Equal(t, "100.00", money.ClampAmount(dec("100"), dec("120")).StringFixed(2))
	assert.Equal(t, "40.00", money.ClampAmount(dec("100"), dec("40")).StringFixed(2))
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", money.FormatBRL(dec("1234.56")))
	assert.Equal(t, "R$ 0,00", money.FormatBRL(decimal.Zero))
}
