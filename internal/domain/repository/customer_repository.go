package repository

import "github.com/ruanmp/livraria-pos/internal/domain/entity"

// CustomerRepository porta de persistência de clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
}
