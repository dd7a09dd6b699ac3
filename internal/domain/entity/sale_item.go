package entity

import "github.com/shopspring/decimal"

// SaleItem é uma linha de uma venda persistida.
// Discount é sempre um valor em reais (pós-alocação do desconto geral);
// Total = UnitPrice * Quantity - Discount.
type SaleItem struct {
	ID        string
	SaleID    string
	BookID    string
	Title     string // snapshot do título para o cupom
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}
