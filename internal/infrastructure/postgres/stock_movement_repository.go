package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação do livro-razão sobre PostgreSQL
// (aceita pool ou tx). Somente INSERT e SELECT: movimentos são imutáveis.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste um movimento de estoque.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, book_id, type, quantity, reason, notes, sale_id, responsible, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	saleID := (*string)(nil)
	if movement.SaleID != "" {
		saleID = &movement.SaleID
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.BookID, movement.Type, movement.Quantity,
		movement.Reason, movement.Notes, saleID, movement.Responsible, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

const movementColumns = `id, book_id, type, quantity, reason, notes, sale_id, responsible, created_at`

// ListByBook lista os movimentos de um livro, mais recentes primeiro.
func (r *StockMovementRepo) ListByBook(bookID string, limit int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements WHERE book_id = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, bookID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements by book: %w", err)
	}
	return collectMovements(rows)
}

// ListAll lista os movimentos de todos os livros, mais recentes primeiro.
func (r *StockMovementRepo) ListAll(limit int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements
		ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var saleID *string
		if err := rows.Scan(&m.ID, &m.BookID, &m.Type, &m.Quantity,
			&m.Reason, &m.Notes, &saleID, &m.Responsible, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if saleID != nil {
			m.SaleID = *saleID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
