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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementação de SaleRepository sobre PostgreSQL (aceita pool ou tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository constrói o adaptador de vendas. Passar pool ou tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste o cabeçalho da venda. A constraint única em
// idempotency_key transforma um checkout duplicado concorrente em
// domain.ErrDuplicate, que o caso de uso resolve buscando a venda original.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, customer_id, cashier_id, payment_method, subtotal, discount_total, general_discount, total, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	customerID := (*string)(nil)
	if sale.CustomerID != "" {
		customerID = &sale.CustomerID
	}
	key := (*string)(nil)
	if sale.IdempotencyKey != "" {
		key = &sale.IdempotencyKey
	}
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, customerID, sale.CashierID, sale.PaymentMethod,
		sale.Subtotal, sale.DiscountTotal, sale.GeneralDiscount, sale.Total,
		key, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha da venda.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sale_items (id, sale_id, book_id, title, quantity, unit_price, discount, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.BookID, item.Title,
		item.Quantity, item.UnitPrice, item.Discount, item.Total,
	)
	if err != nil {
		return fmt.Errorf("create sale item: %w", err)
	}
	return nil
}

const saleColumns = `id, customer_id, cashier_id, payment_method, subtotal, discount_total, general_discount, total, idempotency_key, created_at`

// GetByID obtém uma venda por ID. Devolve (nil, nil) se não existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetByIdempotencyKey obtém a venda gravada com uma chave de idempotência.
// Devolve (nil, nil) se a chave nunca foi usada.
func (r *SaleRepo) GetByIdempotencyKey(key string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE idempotency_key = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale by idempotency key: %w", err)
	}
	return s, nil
}

// GetItemsBySaleID lista as linhas de uma venda na ordem de inserção.
func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, book_id, title, quantity, unit_price, discount, total
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.BookID, &it.Title,
			&it.Quantity, &it.UnitPrice, &it.Discount, &it.Total); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista vendas, mais recentes primeiro.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var customerID, key *string
	err := row.Scan(&s.ID, &customerID, &s.CashierID, &s.PaymentMethod,
		&s.Subtotal, &s.DiscountTotal, &s.GeneralDiscount, &s.Total,
		&key, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if customerID != nil {
		s.CustomerID = *customerID
	}
	if key != nil {
		s.IdempotencyKey = *key
	}
	return &s, nil
}
