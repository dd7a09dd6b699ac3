package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pagamento aceitas no caixa.
const (
	PaymentDinheiro = "dinheiro"
	PaymentCartao   = "cartao"
	PaymentPix      = "pix"
)

// Sale é o cabeçalho de uma venda finalizada. Imutável após a criação.
// DiscountTotal já inclui o desconto geral redistribuído por item;
// GeneralDiscount guarda o valor bruto informado no checkout apenas
// para exibição no cupom.
type Sale struct {
	ID              string
	CustomerID      string // vazio = consumidor final
	CashierID       string
	PaymentMethod   string
	Subtotal        decimal.Decimal
	DiscountTotal   decimal.Decimal
	GeneralDiscount decimal.Decimal
	Total           decimal.Decimal
	IdempotencyKey  string // gerado pelo cliente; protege contra duplo clique no checkout
	CreatedAt       time.Time
}
