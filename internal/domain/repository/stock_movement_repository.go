package repository

import "github.com/ruanmp/livraria-pos/internal/domain/entity"

// StockMovementRepository porta de persistência do livro-razão de estoque.
// Somente append e leitura: movimentos nunca são alterados nem apagados.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByBook(bookID string, limit int) ([]*entity.StockMovement, error)
	ListAll(limit int) ([]*entity.StockMovement, error)
}
