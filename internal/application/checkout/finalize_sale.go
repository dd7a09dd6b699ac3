package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ruanmp/livraria-pos/internal/application/dto"
	"github.com/ruanmp/livraria-pos/internal/domain"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/internal/domain/pos"
	"github.com/ruanmp/livraria-pos/internal/domain/repository"
	"github.com/ruanmp/livraria-pos/pkg/logger"
	"github.com/ruanmp/livraria-pos/pkg/money"
)

// FinalizeSaleUseCase converte um carrinho em venda persistida mais as
// baixas de estoque correspondentes, tudo em uma única transação:
// validar → alocar desconto geral → gravar cabeçalho e itens → lançar uma
// saída por linha. Qualquer falha desfaz tudo — nunca fica uma venda sem
// movimento nem um movimento sem venda.
type FinalizeSaleUseCase struct {
	txRunner TxRunner
	ledger   StockLedger
	bookRepo repository.BookRepository
	saleRepo repository.SaleRepository // consultas fora de tx (idempotência)
	log      *logger.Logger
}

// NewFinalizeSaleUseCase constrói o caso de uso.
func NewFinalizeSaleUseCase(
	txRunner TxRunner,
	ledger StockLedger,
	bookRepo repository.BookRepository,
	saleRepo repository.SaleRepository,
	log *logger.Logger,
) *FinalizeSaleUseCase {
	return &FinalizeSaleUseCase{
		txRunner: txRunner,
		ledger:   ledger,
		bookRepo: bookRepo,
		saleRepo: saleRepo,
		log:      log,
	}
}

// FinalizeSale finaliza o checkout do carrinho da sessão. O chamador deve
// limpar o carrinho após o sucesso. Reenvio com a mesma chave de
// idempotência devolve a venda já criada em vez de vender duas vezes.
func (uc *FinalizeSaleUseCase) FinalizeSale(ctx context.Context, sess *entity.SessionContext, cart *pos.Cart, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if sess == nil {
		return nil, domain.ErrUnauthorized
	}
	if cart == nil || cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	payment := in.PaymentMethod
	if payment == "" {
		payment = entity.PaymentDinheiro
	}
	switch payment {
	case entity.PaymentDinheiro, entity.PaymentCartao, entity.PaymentPix:
	default:
		return nil, domain.ErrInvalidInput
	}

	// Reenvio do mesmo checkout: devolve a venda existente, sem efeitos.
	if in.IdempotencyKey != "" {
		if existing, err := uc.saleRepo.GetByIdempotencyKey(in.IdempotencyKey); err == nil && existing != nil {
			return uc.toResponse(existing)
		}
	}

	// Revalidação contra o estoque vivo: o estoque pode ter mudado entre a
	// montagem do carrinho e o checkout. A checagem definitiva acontece de
	// novo sob bloqueio de linha dentro da transação.
	for _, li := range cart.Items() {
		book, err := uc.bookRepo.GetByID(li.BookID)
		if err != nil {
			return nil, fmt.Errorf("validação: %w", err)
		}
		if book == nil {
			return nil, fmt.Errorf("validação: livro %q: %w", li.Title, domain.ErrNotFound)
		}
		if book.Quantity < li.Quantity {
			return nil, fmt.Errorf("validação: livro %q: %w", li.Title, domain.ErrInsufficientStock)
		}
	}

	// Desconto geral do checkout é redistribuído nos descontos por item;
	// o que se persiste e se reporta são sempre descontos de linha.
	applied := decimal.Zero
	if in.GeneralDiscountAmount.GreaterThan(decimal.Zero) {
		alloc := pos.AllocateGeneralDiscount(cart, pos.GeneralDiscount{
			Amount: in.GeneralDiscountAmount,
			Kind:   in.GeneralDiscountKind,
		})
		applied = alloc.Applied
		if alloc.Unallocated.GreaterThan(decimal.Zero) {
			uc.log.Warn().
				Str("session_id", sess.SessionID).
				Str("unallocated", alloc.Unallocated.StringFixed(2)).
				Msg("parte do desconto geral não coube nos itens")
		}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:              uuid.New().String(),
		CashierID:       sess.CashierID,
		PaymentMethod:   payment,
		Subtotal:        money.ToCurrency(cart.Subtotal()),
		DiscountTotal:   money.ToCurrency(cart.DiscountTotal()),
		GeneralDiscount: money.ToCurrency(applied),
		Total:           money.ToCurrency(cart.Total()),
		IdempotencyKey:  in.IdempotencyKey,
		CreatedAt:       now,
	}
	if customer := cart.Customer(); customer != nil {
		sale.CustomerID = customer.ID
	}

	items := make([]*entity.SaleItem, 0, len(cart.Items()))
	for _, li := range cart.Items() {
		items = append(items, &entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			BookID:    li.BookID,
			Title:     li.Title,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
			Discount:  money.ToCurrency(li.EffectiveDiscount()),
			Total:     money.ToCurrency(li.LineTotal()),
		})
	}

	saleNote := "Venda #" + sale.ID
	err := uc.txRunner.RunCheckout(ctx, func(
		movRepo repository.StockMovementRepository,
		bookRepo repository.BookRepository,
		saleRepo repository.SaleRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return fmt.Errorf("gravar venda: %w", err)
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return fmt.Errorf("gravar itens da venda: %w", err)
			}
		}
		for _, li := range cart.Items() {
			if _, err := uc.ledger.RecordSaleExitInTx(
				movRepo, bookRepo,
				li.BookID, li.Quantity,
				sale.ID, saleNote, responsible(sess),
				now,
			); err != nil {
				return fmt.Errorf("baixa de estoque: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		// Corrida entre dois cliques com a mesma chave: o outro venceu,
		// devolve a venda que ele criou.
		if errors.Is(err, domain.ErrDuplicate) && in.IdempotencyKey != "" {
			if existing, lookupErr := uc.saleRepo.GetByIdempotencyKey(in.IdempotencyKey); lookupErr == nil && existing != nil {
				return uc.toResponse(existing)
			}
		}
		uc.log.Error().Err(err).
			Str("session_id", sess.SessionID).
			Str("sale_id", sale.ID).
			Msg("checkout falhou; transação desfeita")
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("cashier_id", sess.CashierID).
		Str("total", sale.Total.StringFixed(2)).
		Int("items", len(items)).
		Msg("venda finalizada")

	return buildResponse(sale, items), nil
}

// GetSale devolve uma venda persistida com seus itens.
func (uc *FinalizeSaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(sale)
}

func (uc *FinalizeSaleUseCase) toResponse(sale *entity.Sale) (*dto.SaleResponse, error) {
	items, err := uc.saleRepo.GetItemsBySaleID(sale.ID)
	if err != nil {
		return nil, err
	}
	return buildResponse(sale, items), nil
}

func buildResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:              sale.ID,
		CustomerID:      sale.CustomerID,
		CashierID:       sale.CashierID,
		PaymentMethod:   sale.PaymentMethod,
		Subtotal:        sale.Subtotal,
		DiscountTotal:   sale.DiscountTotal,
		GeneralDiscount: sale.GeneralDiscount,
		Total:           sale.Total,
		TotalFormatted:  money.FormatBRL(sale.Total),
		Items:           make([]dto.SaleItemResponse, 0, len(items)),
		CreatedAt:       sale.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			BookID:    it.BookID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			Total:     it.Total,
		})
	}
	return resp
}

func responsible(sess *entity.SessionContext) string {
	if sess.CashierName != "" {
		return sess.CashierName
	}
	return sess.CashierID
}
