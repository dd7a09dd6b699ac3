// Package pos contém os serviços de domínio puros do ponto de venda:
// o carrinho e o alocador de desconto geral. Nada aqui toca persistência.
package pos

import (
	"github.com/shopspring/decimal"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/pkg/money"
)

// Formas de entrada de desconto. O valor em reais é sempre o dado
// autoritativo; o tipo registra apenas como o operador digitou.
const (
	DiscountKindFixed      = "fixed"
	DiscountKindPercentage = "percentage"
)

// LineItem é uma linha do carrinho: um livro, a quantidade e o desconto
// da linha (valor em reais). Pertence exclusivamente ao carrinho e só é
// alterado pelas operações dele.
type LineItem struct {
	BookID       string
	Title        string
	UnitPrice    decimal.Decimal
	Quantity     int
	Discount     decimal.Decimal // valor em reais, já convertido
	DiscountKind string          // metadado de entrada (fixed | percentage)
}

// LineValue retorna o valor bruto da linha (preço unitário * quantidade).
func (li *LineItem) LineValue() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// EffectiveDiscount retorna o desconto efetivo da linha, limitado ao
// valor bruto dela: o desconto nunca ultrapassa o que a linha vale.
func (li *LineItem) EffectiveDiscount() decimal.Decimal {
	return money.ClampAmount(li.LineValue(), li.Discount)
}

// LineTotal retorna o valor da linha já descontado.
func (li *LineItem) LineTotal() decimal.Decimal {
	return li.LineValue().Sub(li.EffectiveDiscount())
}

// Cart é o carrinho de uma sessão de caixa: itens (um por livro, em ordem
// de inserção) e o cliente selecionado. Os totais derivados são
// recalculados de forma síncrona a cada mutação — nenhuma janela de total
// desatualizado é observável pelo chamador.
type Cart struct {
	items    []*LineItem
	customer *entity.Customer

	subtotal      decimal.Decimal
	discountTotal decimal.Decimal
	total         decimal.Decimal
}

// NewCart cria um carrinho vazio para o início da sessão.
func NewCart() *Cart {
	c := &Cart{}
	c.recompute()
	return c
}

// AddItem adiciona um livro: se já estiver no carrinho incrementa a
// quantidade em 1, senão insere uma linha nova com quantidade 1 e sem
// desconto. Livro sem estoque é ignorado em silêncio (a tela deve ter
// filtrado; a validação definitiva acontece no checkout).
func (c *Cart) AddItem(book *entity.Book) {
	if book == nil || book.Quantity <= 0 {
		return
	}
	if li := c.find(book.ID); li != nil {
		li.Quantity++
		c.recompute()
		return
	}
	c.items = append(c.items, &LineItem{
		BookID:       book.ID,
		Title:        book.Title,
		UnitPrice:    book.Price,
		Quantity:     1,
		Discount:     decimal.Zero,
		DiscountKind: DiscountKindFixed,
	})
	c.recompute()
}

// RemoveItem remove a linha do livro; não faz nada se ele não estiver no carrinho.
func (c *Cart) RemoveItem(bookID string) {
	for i, li := range c.items {
		if li.BookID == bookID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.recompute()
			return
		}
	}
}

// UpdateQuantity substitui a quantidade da linha. Quantidade zero ou
// negativa equivale a remover o item.
func (c *Cart) UpdateQuantity(bookID string, qty int) {
	if qty <= 0 {
		c.RemoveItem(bookID)
		return
	}
	if li := c.find(bookID); li != nil {
		li.Quantity = qty
		c.recompute()
	}
}

// UpdateDiscount define o desconto da linha. Percentual é convertido em
// valor sobre o bruto da linha aqui, na borda; o que fica guardado é
// sempre o valor em reais. Entrada negativa vira zero.
func (c *Cart) UpdateDiscount(bookID string, amount decimal.Decimal, kind string) {
	li := c.find(bookID)
	if li == nil {
		return
	}
	if kind == DiscountKindPercentage {
		li.Discount = money.PercentageToAmount(li.LineValue(), amount)
	} else {
		kind = DiscountKindFixed
		if amount.LessThan(decimal.Zero) {
			amount = decimal.Zero
		}
		li.Discount = amount
	}
	li.DiscountKind = kind
	c.recompute()
}

// SetCustomer associa um cliente à venda (nil = consumidor final).
func (c *Cart) SetCustomer(customer *entity.Customer) {
	c.customer = customer
}

// Customer retorna o cliente selecionado, ou nil.
func (c *Cart) Customer() *entity.Customer { return c.customer }

// Clear esvazia os itens e desassocia o cliente (fim de venda ou cancelamento).
func (c *Cart) Clear() {
	c.items = nil
	c.customer = nil
	c.recompute()
}

// Items retorna as linhas em ordem de inserção. O slice é compartilhado:
// os chamadores não devem alterá-lo fora das operações do carrinho.
func (c *Cart) Items() []*LineItem { return c.items }

// IsEmpty informa se o carrinho não tem itens.
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Subtotal é a soma dos valores brutos das linhas.
func (c *Cart) Subtotal() decimal.Decimal { return c.subtotal }

// DiscountTotal é a soma dos descontos efetivos das linhas.
func (c *Cart) DiscountTotal() decimal.Decimal { return c.discountTotal }

// Total = Subtotal - DiscountTotal, nunca negativo.
func (c *Cart) Total() decimal.Decimal { return c.total }

func (c *Cart) find(bookID string) *LineItem {
	for _, li := range c.items {
		if li.BookID == bookID {
			return li
		}
	}
	return nil
}

func (c *Cart) recompute() {
	subtotal := decimal.Zero
	discount := decimal.Zero
	for _, li := range c.items {
		subtotal = subtotal.Add(li.LineValue())
		discount = discount.Add(li.EffectiveDiscount())
	}
	c.subtotal = subtotal
	c.discountTotal = discount
	c.total = subtotal.Sub(discount)
	if c.total.LessThan(decimal.Zero) {
		c.total = decimal.Zero
	}
}
