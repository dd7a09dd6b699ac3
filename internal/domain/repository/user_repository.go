package repository

import "github.com/ruanmp/livraria-pos/internal/domain/entity"

// UserRepository porta de persistência de operadores (admin e caixa).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
