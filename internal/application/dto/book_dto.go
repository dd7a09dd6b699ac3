package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBookRequest body para POST /api/books.
type CreateBookRequest struct {
	ISBN      string          `json:"isbn"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Publisher string          `json:"publisher,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// BookResponse livro do catálogo.
type BookResponse struct {
	ID        string          `json:"id"`
	ISBN      string          `json:"isbn"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Publisher string          `json:"publisher,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
}
