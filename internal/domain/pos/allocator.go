package pos

import (
	"github.com/shopspring/decimal"
	"github.com/ruanmp/livraria-pos/pkg/money"
)

// GeneralDiscount é o desconto único de checkout, aplicado sobre a venda
// inteira. É um valor transiente: não é persistido como tal — o alocador
// o redistribui nos descontos por item, que são o que fica gravado.
type GeneralDiscount struct {
	Amount decimal.Decimal
	Kind   string // fixed | percentage
}

// AllocationResult relata o resultado da alocação. Unallocated é a parte
// do desconto que não coube em nenhum item (desconto da linha já no teto);
// o excedente é devolvido ao chamador em vez de sumir em silêncio.
type AllocationResult struct {
	General     decimal.Decimal // valor geral após conversão e clamp ao total
	Applied     decimal.Decimal // efetivamente somado aos itens
	Unallocated decimal.Decimal
}

// AllocateGeneralDiscount distribui o desconto geral entre as linhas do
// carrinho, proporcional ao valor bruto de cada uma. As parcelas são
// truncadas ao centavo e a última linha recebe o resto da divisão, de modo
// que a soma das parcelas seja exatamente o valor distribuído — política
// deliberada de desempate, não aproximação. Os descontos são aditivos:
// cada parcela soma ao desconto que a linha já tinha. Nunca gera erro:
// carrinho vazio ou desconto não positivo é um no-op.
func AllocateGeneralDiscount(c *Cart, d GeneralDiscount) AllocationResult {
	if c == nil || len(c.items) == 0 {
		return AllocationResult{General: decimal.Zero, Applied: decimal.Zero, Unallocated: decimal.Zero}
	}

	general := d.Amount
	if d.Kind == DiscountKindPercentage {
		general = money.PercentageToAmount(c.Total(), d.Amount)
	}
	// Nunca descontar mais do que a venda vale.
	general = money.ClampAmount(c.Total(), general)
	if general.LessThanOrEqual(decimal.Zero) {
		return AllocationResult{General: decimal.Zero, Applied: decimal.Zero, Unallocated: decimal.Zero}
	}

	shares := proportionalShares(c.items, general)

	unallocated := decimal.Zero
	for i, li := range c.items {
		room := li.LineValue().Sub(li.EffectiveDiscount())
		share := shares[i]
		if share.GreaterThan(room) {
			// O excedente é relatado, não redistribuído.
			unallocated = unallocated.Add(share.Sub(room))
			share = room
		}
		li.Discount = li.EffectiveDiscount().Add(share)
	}
	c.recompute()

	return AllocationResult{
		General:     general,
		Applied:     general.Sub(unallocated),
		Unallocated: unallocated,
	}
}

// proportionalShares divide general entre os itens na proporção do valor
// bruto de cada linha: todas as parcelas menos a última são truncadas ao
// centavo e a última recebe o que sobrar, garantindo soma exata.
func proportionalShares(items []*LineItem, general decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(items))
	if len(items) == 1 {
		shares[0] = general
		return shares
	}

	totalValue := decimal.Zero
	for _, li := range items {
		totalValue = totalValue.Add(li.LineValue())
	}

	assigned := decimal.Zero
	last := len(items) - 1
	for i, li := range items[:last] {
		share := decimal.Zero
		if totalValue.GreaterThan(decimal.Zero) {
			share = money.FloorToCent(general.Mul(li.LineValue()).Div(totalValue))
		}
		shares[i] = share
		assigned = assigned.Add(share)
	}
	shares[last] = general.Sub(assigned)
	return shares
}
