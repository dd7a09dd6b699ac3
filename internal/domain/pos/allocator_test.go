package pos_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ruanmp/livraria-pos/internal/domain/pos"
)

// Cenário de referência: A (100 x 2 = 200) e B (50 x 1 = 50), desconto
// geral fixo de R$10. A recebe floor(10*200/250) = 8,00; B, última linha,
// recebe o resto de 2,00; total passa de 250 para 240.
func TestAllocate_ProporcionalComRestoNaUltima(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("a", "A", "100.00", 10))
	c.UpdateQuantity("a", 2)
	c.AddItem(book("b", "B", "50.00", 10))
	require.Equal(t, "250.00", c.Total().StringFixed(2))

	res := pos.AllocateGeneralDiscount(c, pos.GeneralDiscount{Amount: dec("10.00"), Kind: pos.DiscountKindFixed})

	assert.Equal(t, "10.00", res.Applied.StringFixed(2))
	assert.True(t, res.Unallocated.IsZero())
	assert.Equal(t, "8.00", c.Items()[0].Discount.StringFixed(2))
	assert.Equal(t, "2.00", c.Items()[1].Discount.StringFixed(2))
	assert.Equal(t, "240.00", c.Total().StringFixed(2))
}

// R$10,00 entre 3 itens de valor igual não divide exato: as parcelas devem
// somar exatamente 1000 centavos (3,33 + 3,33 + 3,34), sem perder nem
// ganhar centavo no arredondamento.
func TestAllocate_SomaExataSemDeriva(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		c := pos.NewCart()
		for i := 0; i < n; i++ {
			c.AddItem(book(string(rune('a'+i)), "Livro", "20.00", 10))
		}
		antes := c.Total()

		res := pos.AllocateGeneralDiscount(c, pos.GeneralDiscount{Amount: dec("10.00"), Kind: pos.DiscountKindFixed})

		soma := decimal.Zero
		for _, li := range c.Items() {
			soma = soma.Add(li.Discount)
		}
		assert.True(t, soma.Equal(dec("10.00")), "com %d itens a soma das parcelas deve ser exatamente o desconto", n)
		assert.True(t, res.Unallocated.IsZero())
		assert.True(t, c.Total().Equal(antes.Sub(dec("10.00"))), "novo total = total original - desconto geral")
	}
}

func TestAllocate_TresItensIguais(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("a", "A", "20.00", 10))
	c.AddItem(book("b", "B", "20.00", 10))
	c.AddItem(book("c", "C", "20.00", 10))

	pos.AllocateGeneralDiscount(c, pos.GeneralDiscount{Amount: dec("10.00"), Kind: pos.DiscountKindFixed})

	assert.Equal(t, "3.33", c.Items()[0].Discount.StringFixed(2))
	assert.Equal(t, "3.33", c.Items()[1].Discount.StringFixed(2))
	assert.Equal(t, "3.34", c.Items()[2].Discount.StringFixed(2), "a última linha recebe o resto")
}

func TestAllocate_ItemUnicoRecebeTudo(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("a", "A", "100.00", 10))
	c.UpdateDiscount("a", dec("5.00"), pos.DiscountKindFixed)

	res := pos.AllocateGeneralDiscount(c, pos.GeneralDiscount{Amount: dec("10.00"), Kind: pos.DiscountKindFixed})

	// desconto é aditivo: 5 que já havia + 10 do geral
	assert.Equal(t, "15.00", c.Items()[0].Discount.StringFixed(2))
	assert.Equal(t, "10.00", res.Applied.StringFixed(2))
	assert.Equal(t, "85.00", c.Total().StringFixed(2))
}

func TestAllocate_Percentual(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("a", "A", "100.00", 10))
	c.UpdateQuantity("a", 2)
	c.AddItem(book("b", "B", "50.00", 10))

	// 10% do total (250) = 25
	res := pos.AllocateGeneralDiscount(c, pos.GeneralDiscount{Amount: dec("10"), Kind: pos.DiscountKindPercentage})

	assert.Equal(t, "25.00", res.General.StringFixed(2))
	assert.Equal(t, "225.00", c.Total().StringFixed(2))
}

func TestAllocate_ClampAoTotal(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("a", "A", "30.00", 10))

	res := pos.AllocateGeneralDiscount(c, pos.GeneralDiscount{Amount: dec("100.00"), Kind: pos.DiscountKindFixed})

	assert.Equal(t, "30.00", res.General.StringFixed(2), "nunca descontar mais do que a venda vale")
	assert.Equal(t, "0.00", c.Total().StringFixed(2))
}

func TestAllocate_CarrinhoVazioNoOp(t *testing.T) {
	c := pos.NewCart()
	res := pos.AllocateGeneralDiscount(c, pos.GeneralDiscount{Amount: dec("10.00"), Kind: pos.DiscountKindFixed})
	assert.True(t, res.Applied.IsZero())
	assert.True(t, res.Unallocated.IsZero())
}

func TestAllocate_DescontoNaoPositivoNoOp(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("a", "A", "30.00", 10))

	res := pos.AllocateGeneralDiscount(c, pos.GeneralDiscount{Amount: dec("-5.00"), Kind: pos.DiscountKindFixed})

	assert.True(t, res.Applied.IsZero())
	assert.True(t, c.Items()[0].Discount.IsZero())
	assert.Equal(t, "30.00", c.Total().StringFixed(2))
}

// Linha já no teto de desconto: a parcela dela não cabe e o excedente é
// relatado em Unallocated em vez de ser redistribuído ou descartado.
func TestAllocate_ExcedenteRelatado(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("a", "A", "100.00", 10))
	c.AddItem(book("b", "B", "100.00", 10))
	c.UpdateDiscount("a", dec("100.00"), pos.DiscountKindFixed) // linha A já zerada

	// total atual = 100 (só B conta); geral de 50 é proporcional ao bruto:
	// A deveria receber 25, mas não tem espaço
	res := pos.AllocateGeneralDiscount(c, pos.GeneralDiscount{Amount: dec("50.00"), Kind: pos.DiscountKindFixed})

	assert.Equal(t, "25.00", res.Unallocated.StringFixed(2))
	assert.Equal(t, "25.00", res.Applied.StringFixed(2))
	assert.Equal(t, "100.00", c.Items()[0].Discount.StringFixed(2), "linha no teto não passa dele")
	assert.Equal(t, "25.00", c.Items()[1].Discount.StringFixed(2))
}
