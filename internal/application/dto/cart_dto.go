package dto

import "github.com/shopspring/decimal"

// AddItemRequest body para POST /api/cart/items.
type AddItemRequest struct {
	BookID string `json:"book_id"`
}

// UpdateQuantityRequest body para PUT /api/cart/items/:bookId/quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateDiscountRequest body para PUT /api/cart/items/:bookId/discount.
// Kind indica como o operador digitou (fixed | percentage); o valor
// persistido na linha é sempre em reais.
type UpdateDiscountRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Kind   string          `json:"kind"`
}

// SetCustomerRequest body para PUT /api/cart/customer.
type SetCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

// CartItemResponse linha do carrinho.
type CartItemResponse struct {
	BookID    string          `json:"book_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Discount  decimal.Decimal `json:"discount"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartResponse estado atual do carrinho com totais derivados.
type CartResponse struct {
	Items          []CartItemResponse `json:"items"`
	CustomerID     string             `json:"customer_id,omitempty"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountTotal  decimal.Decimal    `json:"discount_total"`
	Total          decimal.Decimal    `json:"total"`
	TotalFormatted string             `json:"total_formatted"` // R$ #.##0,00, só exibição
}
