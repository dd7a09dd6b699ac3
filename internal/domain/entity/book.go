package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book representa um livro do catálogo da livraria.
// Quantity é o estoque atual autoritativo; só muda como efeito colateral
// de um StockMovement registrado (mesma transação de persistência).
type Book struct {
	ID        string
	ISBN      string // código único
	Title     string
	Author    string
	Publisher string
	Price     decimal.Decimal // preço de venda unitário
	Quantity  int             // estoque atual, nunca negativo
	CreatedAt time.Time
	UpdatedAt time.Time
}
