package repository

import "github.com/ruanmp/livraria-pos/internal/domain/entity"

// SaleRepository porta de persistência de vendas e seus itens.
// GetByIdempotencyKey sustenta a proteção contra checkout duplicado.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	GetByIdempotencyKey(key string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
}
