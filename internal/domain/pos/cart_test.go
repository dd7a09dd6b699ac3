package pos_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/internal/domain/pos"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func book(id, title, price string, qty int) *entity.Book {
	return &entity.Book{ID: id, Title: title, Price: dec(price), Quantity: qty}
}

func TestCart_AddItem_NovoEIncremento(t *testing.T) {
	c := pos.NewCart()
	b := book("b1", "Dom Casmurro", "39.90", 10)

	c.AddItem(b)
	require.Len(t, c.Items(), 1)
	assert.Equal(t, 1, c.Items()[0].Quantity)

	// mesmo livro incrementa a quantidade, não cria linha nova
	c.AddItem(b)
	require.Len(t, c.Items(), 1)
	assert.Equal(t, 2, c.Items()[0].Quantity)
	assert.Equal(t, "79.80", c.Subtotal().StringFixed(2))
}

func TestCart_AddItem_SemEstoqueIgnorado(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("b1", "Esgotado", "10.00", 0))
	assert.True(t, c.IsEmpty(), "livro sem estoque não entra no carrinho")
}

func TestCart_UpdateQuantity_ZeroRemove(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("b1", "Dom Casmurro", "39.90", 10))

	c.UpdateQuantity("b1", 3)
	assert.Equal(t, 3, c.Items()[0].Quantity)

	c.UpdateQuantity("b1", 0)
	assert.True(t, c.IsEmpty(), "quantidade <= 0 equivale a remover")
}

func TestCart_RemoveItem_AusenteNoOp(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("b1", "Dom Casmurro", "39.90", 10))
	c.RemoveItem("inexistente")
	assert.Len(t, c.Items(), 1)
}

func TestCart_UpdateDiscount_PercentualConvertidoNaBorda(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("b1", "Dom Casmurro", "100.00", 10))
	c.UpdateQuantity("b1", 2) // linha vale 200

	c.UpdateDiscount("b1", dec("10"), pos.DiscountKindPercentage)

	li := c.Items()[0]
	assert.Equal(t, "20.00", li.Discount.StringFixed(2), "10 por cento de 200 vira valor em reais")
	assert.Equal(t, pos.DiscountKindPercentage, li.DiscountKind)
	assert.Equal(t, "180.00", c.Total().StringFixed(2))
}

func TestCart_UpdateDiscount_NegativoViraZero(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("b1", "Dom Casmurro", "50.00", 10))
	c.UpdateDiscount("b1", dec("-5"), pos.DiscountKindFixed)
	assert.True(t, c.Items()[0].Discount.IsZero())
}

func TestCart_TotaisConsistentes(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("b1", "A", "100.00", 10))
	c.UpdateQuantity("b1", 2)
	c.AddItem(book("b2", "B", "50.00", 10))
	c.UpdateDiscount("b1", dec("30.00"), pos.DiscountKindFixed)

	// total = subtotal - soma dos descontos efetivos, sempre
	esperado := c.Subtotal().Sub(c.DiscountTotal())
	assert.True(t, c.Total().Equal(esperado))
	assert.Equal(t, "250.00", c.Subtotal().StringFixed(2))
	assert.Equal(t, "220.00", c.Total().StringFixed(2))
}

func TestCart_DescontoAcimaDaLinhaEhLimitado(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("b1", "A", "10.00", 10))
	c.UpdateDiscount("b1", dec("999.00"), pos.DiscountKindFixed)

	// o desconto efetivo nunca passa do valor bruto da linha
	assert.Equal(t, "10.00", c.Items()[0].EffectiveDiscount().StringFixed(2))
	assert.Equal(t, "0.00", c.Total().StringFixed(2), "total nunca fica negativo")
}

func TestCart_Clear(t *testing.T) {
	c := pos.NewCart()
	c.AddItem(book("b1", "A", "10.00", 10))
	c.SetCustomer(&entity.Customer{ID: "c1", Name: "Maria"})

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.Customer())
	assert.True(t, c.Total().IsZero())
}
