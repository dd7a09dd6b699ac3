package checkout

import (
	"context"
	"time"

	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação que abrange os
// repositórios de estoque e de venda: cabeçalho, itens e baixas de estoque
// são gravados juntos ou não são gravados.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		bookRepo repository.BookRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockLedger integra o checkout com o livro-razão de estoque.
// RecordSaleExitInTx lança uma saída com motivo "venda" usando os
// repositórios do chamador (mesma transação); erro implica rollback.
type StockLedger interface {
	RecordSaleExitInTx(
		movRepo repository.StockMovementRepository,
		bookRepo repository.BookRepository,
		bookID string,
		quantity int,
		saleID, notes, responsible string,
		now time.Time,
	) (*entity.StockMovement, error)
}
