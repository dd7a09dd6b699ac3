package repository

import "github.com/ruanmp/livraria-pos/internal/domain/entity"

// BookRepository porta de persistência de livros.
// GetForUpdate bloqueia a linha do livro (SELECT FOR UPDATE) para que a
// checagem de estoque e o decremento sejam uma unidade atômica dentro da
// transação corrente.
type BookRepository interface {
	Create(book *entity.Book) error
	GetByID(id string) (*entity.Book, error)
	GetForUpdate(id string) (*entity.Book, error)
	UpdateQuantity(id string, quantity int) error
	List(limit, offset int) ([]*entity.Book, error)
}
