package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ruanmp/livraria-pos/internal/domain"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/internal/domain/ledger"
	"github.com/ruanmp/livraria-pos/internal/domain/repository"
)

// UseCase registra movimentações de estoque de forma transacional
// (entrada, saída, ajuste) com bloqueio de linha no livro e Commit/Rollback.
type UseCase struct {
	txRunner TxRunner
	bookRepo repository.BookRepository          // leituras fora de tx
	movRepo  repository.StockMovementRepository // leituras fora de tx
}

// NewUseCase constrói o caso de uso do livro-razão.
func NewUseCase(txRunner TxRunner, bookRepo repository.BookRepository, movRepo repository.StockMovementRepository) *UseCase {
	return &UseCase{txRunner: txRunner, bookRepo: bookRepo, movRepo: movRepo}
}

// MovementInput entrada para registrar uma movimentação.
type MovementInput struct {
	BookID   string
	Type     string // entrada | saida
	Quantity int    // sempre positivo
	Reason   string
	Notes    string
	SaleID   string // preenchido apenas por vendas
}

// MovementWithSale é um movimento anotado com o id de venda derivado
// (coluna sale_id ou token nas observações, via ledger.DeriveSaleID).
type MovementWithSale struct {
	Movement *entity.StockMovement
	SaleID   string
}

// RecordMovement valida a entrada, abre uma transação, bloqueia a linha do
// livro e grava o movimento junto com o novo estoque. Para saídas, a
// suficiência de estoque é checada sob o bloqueio: duas vendas simultâneas
// não conseguem ambas passar pela checagem.
func (uc *UseCase) RecordMovement(ctx context.Context, sess *entity.SessionContext, in MovementInput) (*entity.StockMovement, error) {
	if in.Type != entity.MovementTypeEntrada && in.Type != entity.MovementTypeSaida {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if sess == nil {
		return nil, domain.ErrUnauthorized
	}
	book, err := uc.bookRepo.GetByID(in.BookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrNotFound
	}

	var mov *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		bookRepo repository.BookRepository,
	) error {
		mov, err = uc.RecordMovementInTx(movRepo, bookRepo, in, responsible(sess), time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RecordMovementInTx executa a movimentação usando os repositórios do
// chamador (mesma transação). É o caminho que o checkout usa para lançar
// as saídas de venda dentro da transação da própria venda.
func (uc *UseCase) RecordMovementInTx(
	movRepo repository.StockMovementRepository,
	bookRepo repository.BookRepository,
	in MovementInput,
	responsible string,
	now time.Time,
) (*entity.StockMovement, error) {
	book, err := bookRepo.GetForUpdate(in.BookID)
	if err != nil {
		return nil, fmt.Errorf("bloquear linha do livro: %w", err)
	}
	if book == nil {
		return nil, domain.ErrNotFound
	}

	newQty := book.Quantity
	switch in.Type {
	case entity.MovementTypeEntrada:
		newQty += in.Quantity
	case entity.MovementTypeSaida:
		if book.Quantity < in.Quantity {
			return nil, domain.ErrInsufficientStock
		}
		newQty -= in.Quantity
	default:
		return nil, domain.ErrInvalidInput
	}

	if err := bookRepo.UpdateQuantity(in.BookID, newQty); err != nil {
		return nil, fmt.Errorf("atualizar estoque: %w", err)
	}
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		BookID:      in.BookID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Notes:       in.Notes,
		SaleID:      in.SaleID,
		Responsible: responsible,
		CreatedAt:   now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, fmt.Errorf("gravar movimento: %w", err)
	}
	return mov, nil
}

// RecordSaleExitInTx lança a saída de uma linha vendida usando os
// repositórios do checkout (mesma transação da venda). Implementa a
// interface checkout.StockLedger. Se retornar erro (ex.:
// ErrInsufficientStock), o chamador deve fazer rollback.
func (uc *UseCase) RecordSaleExitInTx(
	movRepo repository.StockMovementRepository,
	bookRepo repository.BookRepository,
	bookID string,
	quantity int,
	saleID, notes, responsible string,
	now time.Time,
) (*entity.StockMovement, error) {
	return uc.RecordMovementInTx(movRepo, bookRepo, MovementInput{
		BookID:   bookID,
		Type:     entity.MovementTypeSaida,
		Quantity: quantity,
		Reason:   entity.MovementReasonVenda,
		Notes:    notes,
		SaleID:   saleID,
	}, responsible, now)
}

// AdjustInventory reconcilia o estoque registrado com a contagem física:
// calcula a diferença sob bloqueio de linha e lança entrada ou saída com
// motivo "ajuste". Diferença zero é erro (o operador precisa saber que
// nada mudou), não sucesso silencioso.
func (uc *UseCase) AdjustInventory(ctx context.Context, sess *entity.SessionContext, bookID string, newQuantity int, notes string) (*entity.StockMovement, error) {
	if newQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if sess == nil {
		return nil, domain.ErrUnauthorized
	}

	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		bookRepo repository.BookRepository,
	) error {
		book, err := bookRepo.GetForUpdate(bookID)
		if err != nil {
			return fmt.Errorf("bloquear linha do livro: %w", err)
		}
		if book == nil {
			return domain.ErrNotFound
		}
		diff := newQuantity - book.Quantity
		if diff == 0 {
			return domain.ErrNoAdjustmentNeeded
		}
		in := MovementInput{
			BookID: bookID,
			Reason: entity.MovementReasonAjuste,
			Notes:  notes,
		}
		if diff > 0 {
			in.Type = entity.MovementTypeEntrada
			in.Quantity = diff
		} else {
			in.Type = entity.MovementTypeSaida
			in.Quantity = -diff
		}
		mov, err = uc.RecordMovementInTx(movRepo, bookRepo, in, responsible(sess), time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// Restock registra uma reposição (entrada com motivo "reposicao").
func (uc *UseCase) Restock(ctx context.Context, sess *entity.SessionContext, bookID string, quantity int, notes string) (*entity.StockMovement, error) {
	return uc.RecordMovement(ctx, sess, MovementInput{
		BookID:   bookID,
		Type:     entity.MovementTypeEntrada,
		Quantity: quantity,
		Reason:   entity.MovementReasonReposicao,
		Notes:    notes,
	})
}

// ListMovementsForBook lista os movimentos de um livro, mais recentes
// primeiro, cada um anotado com o id de venda derivado.
func (uc *UseCase) ListMovementsForBook(ctx context.Context, bookID string, limit int) ([]MovementWithSale, error) {
	movs, err := uc.movRepo.ListByBook(bookID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return annotate(movs), nil
}

// ListAllMovements lista os movimentos de todos os livros, mais recentes primeiro.
func (uc *UseCase) ListAllMovements(ctx context.Context, limit int) ([]MovementWithSale, error) {
	movs, err := uc.movRepo.ListAll(normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return annotate(movs), nil
}

func annotate(movs []*entity.StockMovement) []MovementWithSale {
	out := make([]MovementWithSale, 0, len(movs))
	for _, m := range movs {
		out = append(out, MovementWithSale{Movement: m, SaleID: ledger.DeriveSaleID(m)})
	}
	return out
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 100
	}
	return limit
}

func responsible(sess *entity.SessionContext) string {
	if sess.CashierName != "" {
		return sess.CashierName
	}
	return sess.CashierID
}
