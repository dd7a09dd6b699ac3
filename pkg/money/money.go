// Package money reúne as funções numéricas puras de moeda e desconto do PDV.
//
// Duas políticas de arredondamento convivem aqui e não podem ser trocadas
// entre si: ToCurrency (meio para cima, 2 casas) é só para exibição e
// persistência final; FloorToCent (truncamento) é para parcelas
// intermediárias de uma distribuição, garantindo que a soma das parcelas
// nunca ultrapasse o valor distribuído.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToCurrency arredonda para 2 casas decimais (meio para cima).
func ToCurrency(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// FloorToCent trunca para o centavo. Valores negativos viram zero.
func FloorToCent(amount decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return amount.Truncate(2)
}

// ClampPercentage restringe um percentual ao intervalo [0, 100].
func ClampPercentage(percent decimal.Decimal) decimal.Decimal {
	if percent.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if percent.GreaterThan(hundred) {
		return hundred
	}
	return percent
}

// ClampAmount restringe um valor ao intervalo [0, base].
func ClampAmount(base, amount decimal.Decimal) decimal.Decimal {
	if amount.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if amount.GreaterThan(base) {
		return base
	}
	return amount
}

// PercentageToAmount converte um percentual em valor: base * p / 100,
// com p restrito a [0, 100].
func PercentageToAmount(base, percent decimal.Decimal) decimal.Decimal {
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return base.Mul(ClampPercentage(percent)).Div(hundred)
}

// AmountToPercentage converte um valor em percentual sobre a base.
// Base zero ou negativa retorna 0; o valor é restrito a [0, base].
func AmountToPercentage(base, amount decimal.Decimal) decimal.Decimal {
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return ClampAmount(base, amount).Div(base).Mul(hundred)
}
