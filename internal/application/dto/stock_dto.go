package dto

import "time"

// RegisterMovementRequest body para POST /api/stock/movements.
type RegisterMovementRequest struct {
	BookID   string `json:"book_id"`
	Type     string `json:"type"` // entrada | saida
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
	Notes    string `json:"notes,omitempty"`
}

// AdjustInventoryRequest body para POST /api/stock/adjustments.
// NewQuantity é a contagem física; o serviço calcula a diferença.
type AdjustInventoryRequest struct {
	BookID      string `json:"book_id"`
	NewQuantity int    `json:"new_quantity"`
	Notes       string `json:"notes,omitempty"`
}

// RestockRequest body para POST /api/stock/restock.
type RestockRequest struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// MovementResponse movimento do livro-razão anotado com a venda de origem.
type MovementResponse struct {
	ID          string    `json:"id"`
	BookID      string    `json:"book_id"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	Notes       string    `json:"notes,omitempty"`
	SaleID      string    `json:"sale_id,omitempty"` // derivado, ver ledger.DeriveSaleID
	Responsible string    `json:"responsible"`
	CreatedAt   time.Time `json:"created_at"`
}
