package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ruanmp/livraria-pos/internal/domain"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/internal/domain/repository"
)

var _ repository.BookRepository = (*BookRepo)(nil)

// BookRepo implementação de BookRepository sobre PostgreSQL (aceita pool ou tx).
type BookRepo struct {
	q Querier
}

// NewBookRepository constrói o adaptador de livros. Passar pool ou tx (Querier).
func NewBookRepository(q Querier) *BookRepo {
	return &BookRepo{q: q}
}

// Create persiste um livro novo. ISBN duplicado vira domain.ErrDuplicate.
func (r *BookRepo) Create(book *entity.Book) error {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	query := `
		INSERT INTO books (id, isbn, title, author, publisher, price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		book.ID, book.ISBN, book.Title, book.Author, book.Publisher,
		book.Price, book.Quantity, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

const bookColumns = `id, isbn, title, author, publisher, price, quantity, created_at, updated_at`

// GetByID obtém um livro por ID. Devolve (nil, nil) se não existe.
func (r *BookRepo) GetByID(id string) (*entity.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	b, err := scanBook(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

// GetForUpdate obtém o livro bloqueando a linha (SELECT FOR UPDATE) para que
// checagem de estoque e decremento sejam atômicos dentro da transação.
func (r *BookRepo) GetForUpdate(id string) (*entity.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1 FOR UPDATE`
	b, err := scanBook(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book for update: %w", err)
	}
	return b, nil
}

// UpdateQuantity grava o estoque atual do livro.
func (r *BookRepo) UpdateQuantity(id string, quantity int) error {
	query := `UPDATE books SET quantity = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update book quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista livros ordenados por título.
func (r *BookRepo) List(limit, offset int) ([]*entity.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY title LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()
	var list []*entity.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBook(row pgx.Row) (*entity.Book, error) {
	var b entity.Book
	err := row.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Publisher,
		&b.Price, &b.Quantity, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
