package stock

import (
	"context"

	"github.com/ruanmp/livraria-pos/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante que o append no livro-razão e a
// atualização do estoque do livro sejam uma única operação atômica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		bookRepo repository.BookRepository,
	) error) error
}
