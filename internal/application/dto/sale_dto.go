package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest body para POST /api/checkout.
// GeneralDiscount é opcional; IdempotencyKey é gerada pelo cliente e
// protege contra o duplo clique no botão de finalizar.
type CheckoutRequest struct {
	PaymentMethod          string          `json:"payment_method"`
	GeneralDiscountAmount  decimal.Decimal `json:"general_discount_amount,omitempty"`
	GeneralDiscountKind    string          `json:"general_discount_kind,omitempty"`
	IdempotencyKey         string          `json:"idempotency_key"`
}

// SaleItemResponse linha de uma venda persistida.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	BookID    string          `json:"book_id"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// SaleResponse venda finalizada.
type SaleResponse struct {
	ID              string             `json:"id"`
	CustomerID      string             `json:"customer_id,omitempty"`
	CashierID       string             `json:"cashier_id"`
	PaymentMethod   string             `json:"payment_method"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	DiscountTotal   decimal.Decimal    `json:"discount_total"`
	GeneralDiscount decimal.Decimal    `json:"general_discount"`
	Total           decimal.Decimal    `json:"total"`
	TotalFormatted  string             `json:"total_formatted"`
	Items           []SaleItemResponse `json:"items"`
	CreatedAt       time.Time          `json:"created_at"`
}
