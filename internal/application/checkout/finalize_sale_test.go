package checkout_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ruanmp/livraria-pos/internal/application/checkout"
	"github.com/ruanmp/livraria-pos/internal/application/dto"
	"github.com/ruanmp/livraria-pos/internal/application/stock"
	"github.com/ruanmp/livraria-pos/internal/domain"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/internal/domain/ledger"
	"github.com/ruanmp/livraria-pos/internal/domain/pos"
	"github.com/ruanmp/livraria-pos/internal/domain/repository"
	"github.com/ruanmp/livraria-pos/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeBookRepo struct {
	books map[string]*entity.Book
	// onGetForUpdate permite simular uma venda concorrente que commitou
	// entre a revalidação de leitura e o bloqueio da linha.
	onGetForUpdate func(id string)
}

func (r *fakeBookRepo) Create(b *entity.Book) error { r.books[b.ID] = b; return nil }
func (r *fakeBookRepo) GetByID(id string) (*entity.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, nil
	}
	return b, nil
}
func (r *fakeBookRepo) GetForUpdate(id string) (*entity.Book, error) {
	if r.onGetForUpdate != nil {
		r.onGetForUpdate(id)
	}
	return r.GetByID(id)
}
func (r *fakeBookRepo) UpdateQuantity(id string, qty int) error {
	if b, ok := r.books[id]; ok {
		b.Quantity = qty
	}
	return nil
}
func (r *fakeBookRepo) List(limit, offset int) ([]*entity.Book, error) { return nil, nil }

type fakeMovRepo struct {
	movs []*entity.StockMovement
}

func (r *fakeMovRepo) Create(m *entity.StockMovement) error { r.movs = append(r.movs, m); return nil }
func (r *fakeMovRepo) ListByBook(bookID string, limit int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovRepo) ListAll(limit int) ([]*entity.StockMovement, error) { return r.movs, nil }

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
	items []*entity.SaleItem
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	if s.IdempotencyKey != "" {
		for _, existing := range r.sales {
			if existing.IdempotencyKey == s.IdempotencyKey {
				return domain.ErrDuplicate // índice único em idempotency_key
			}
		}
	}
	r.sales[s.ID] = s
	return nil
}
func (r *fakeSaleRepo) CreateItem(it *entity.SaleItem) error { r.items = append(r.items, it); return nil }
func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}
func (r *fakeSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.items {
		if it.SaleID == saleID {
			out = append(out, it)
		}
	}
	return out, nil
}
func (r *fakeSaleRepo) GetByIdempotencyKey(key string) (*entity.Sale, error) {
	for _, s := range r.sales {
		if s.IdempotencyKey == key {
			return s, nil
		}
	}
	return nil, nil
}
func (r *fakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) { return nil, nil }

// fakeTxRunner simula Commit/Rollback: tira um snapshot dos fakes antes do
// callback e restaura tudo se ele falhar, para que os testes de atomicidade
// observem o mesmo comportamento da transação real.
type fakeTxRunner struct {
	books *fakeBookRepo
	movs  *fakeMovRepo
	sales *fakeSaleRepo
}

func (t *fakeTxRunner) RunCheckout(_ context.Context, fn func(
	repository.StockMovementRepository,
	repository.BookRepository,
	repository.SaleRepository,
) error) error {
	booksBefore := make(map[string]*entity.Book, len(t.books.books))
	for id, b := range t.books.books {
		copia := *b
		booksBefore[id] = &copia
	}
	movsBefore := len(t.movs.movs)
	salesBefore := make(map[string]*entity.Sale, len(t.sales.sales))
	for id, s := range t.sales.sales {
		salesBefore[id] = s
	}
	itemsBefore := len(t.sales.items)

	if err := fn(t.movs, t.books, t.sales); err != nil {
		t.books.books = booksBefore
		t.movs.movs = t.movs.movs[:movsBefore]
		t.sales.sales = salesBefore
		t.sales.items = t.sales.items[:itemsBefore]
		return err
	}
	return nil
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	repository.StockMovementRepository,
	repository.BookRepository,
) error) error {
	return fn(t.movs, t.books)
}

type fixture struct {
	uc    *checkout.FinalizeSaleUseCase
	books *fakeBookRepo
	movs  *fakeMovRepo
	sales *fakeSaleRepo
}

func newFixture() *fixture {
	books := &fakeBookRepo{books: map[string]*entity.Book{
		"a": {ID: "a", Title: "Dom Casmurro", Price: dec("100.00"), Quantity: 10},
		"b": {ID: "b", Title: "Quincas Borba", Price: dec("50.00"), Quantity: 10},
	}}
	movs := &fakeMovRepo{}
	sales := &fakeSaleRepo{sales: map[string]*entity.Sale{}}
	tx := &fakeTxRunner{books: books, movs: movs, sales: sales}
	stockUC := stock.NewUseCase(tx, books, movs)
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return &fixture{
		uc:    checkout.NewFinalizeSaleUseCase(tx, stockUC, books, sales, log),
		books: books,
		movs:  movs,
		sales: sales,
	}
}

func sess() *entity.SessionContext {
	return &entity.SessionContext{SessionID: "s1", CashierID: "u1", CashierName: "Ana", OpenedAt: time.Now()}
}

func cartAB(f *fixture) *pos.Cart {
	c := pos.NewCart()
	c.AddItem(f.books.books["a"])
	c.UpdateQuantity("a", 2) // linha A vale 200
	c.AddItem(f.books.books["b"])
	return c
}

func TestFinalizeSale_FluxoCompleto(t *testing.T) {
	f := newFixture()
	cart := cartAB(f)

	resp, err := f.uc.FinalizeSale(context.Background(), sess(), cart, dto.CheckoutRequest{
		PaymentMethod:         entity.PaymentPix,
		GeneralDiscountAmount: dec("10.00"),
		GeneralDiscountKind:   pos.DiscountKindFixed,
		IdempotencyKey:        "chk-1",
	})
	require.NoError(t, err)

	// desconto geral redistribuído: A 8,00 (proporcional), B 2,00 (resto)
	assert.Equal(t, "240.00", resp.Total.StringFixed(2))
	assert.Equal(t, "10.00", resp.GeneralDiscount.StringFixed(2))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "8.00", resp.Items[0].Discount.StringFixed(2))
	assert.Equal(t, "2.00", resp.Items[1].Discount.StringFixed(2))
	assert.Equal(t, "192.00", resp.Items[0].Total.StringFixed(2))
	assert.Equal(t, "48.00", resp.Items[1].Total.StringFixed(2))
	assert.Equal(t, "R$ 240,00", resp.TotalFormatted)

	// estoque baixado e movimentos ligados à venda
	assert.Equal(t, 8, f.books.books["a"].Quantity)
	assert.Equal(t, 9, f.books.books["b"].Quantity)
	require.Len(t, f.movs.movs, 2)
	for _, m := range f.movs.movs {
		assert.Equal(t, entity.MovementTypeSaida, m.Type)
		assert.Equal(t, entity.MovementReasonVenda, m.Reason)
		assert.Equal(t, resp.ID, m.SaleID)
		assert.Equal(t, "Venda #"+resp.ID, m.Notes)
		assert.Equal(t, "Ana", m.Responsible)
	}
}

func TestFinalizeSale_CarrinhoVazio(t *testing.T) {
	f := newFixture()
	_, err := f.uc.FinalizeSale(context.Background(), sess(), pos.NewCart(), dto.CheckoutRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, f.sales.sales)
}

func TestFinalizeSale_FormaDePagamentoInvalida(t *testing.T) {
	f := newFixture()
	cart := cartAB(f)
	_, err := f.uc.FinalizeSale(context.Background(), sess(), cart, dto.CheckoutRequest{PaymentMethod: "cheque"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// O estoque mudou entre montar o carrinho e finalizar: a revalidação do
// checkout precisa barrar a venda sem deixar nada pela metade.
func TestFinalizeSale_EstoqueMudouAntesDoCheckout(t *testing.T) {
	f := newFixture()
	cart := cartAB(f)
	f.books.books["a"].Quantity = 1 // carrinho pede 2

	_, err := f.uc.FinalizeSale(context.Background(), sess(), cart, dto.CheckoutRequest{})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.sales.sales, "nada persistido")
	assert.Empty(t, f.movs.movs, "nenhum movimento gravado")
	assert.Equal(t, 1, f.books.books["a"].Quantity, "estoque intacto")
}

// Falha no meio da transação: a revalidação de leitura passa, mas uma
// venda concorrente some com o estoque da linha B antes do bloqueio da
// linha. O rollback desfaz a venda, os itens e o movimento já lançado da
// linha A — nunca fica movimento sem venda nem venda sem movimento.
func TestFinalizeSale_FalhaParcialDesfazTudo(t *testing.T) {
	f := newFixture()
	cart := cartAB(f)

	f.books.onGetForUpdate = func(id string) {
		if id == "b" {
			f.books.books["b"].Quantity = 0
		}
	}

	_, err := f.uc.FinalizeSale(context.Background(), sess(), cart, dto.CheckoutRequest{})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.sales.sales)
	assert.Empty(t, f.sales.items)
	assert.Empty(t, f.movs.movs)
	assert.Equal(t, 10, f.books.books["a"].Quantity, "o rollback devolve o estoque da linha A")
}

func TestFinalizeSale_IdempotenciaPorChave(t *testing.T) {
	f := newFixture()
	cart := cartAB(f)
	req := dto.CheckoutRequest{PaymentMethod: entity.PaymentCartao, IdempotencyKey: "chk-42"}

	first, err := f.uc.FinalizeSale(context.Background(), sess(), cart, req)
	require.NoError(t, err)

	// duplo clique: mesmo payload, mesma chave
	second, err := f.uc.FinalizeSale(context.Background(), sess(), cart, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "a segunda chamada devolve a venda existente")
	assert.Len(t, f.sales.sales, 1, "apenas uma venda persistida")
	assert.Len(t, f.movs.movs, 2, "as baixas de estoque não se repetem")
	assert.Equal(t, 8, f.books.books["a"].Quantity)
}

func TestFinalizeSale_DerivacaoDaVendaRoundTrip(t *testing.T) {
	f := newFixture()
	cart := cartAB(f)

	resp, err := f.uc.FinalizeSale(context.Background(), sess(), cart, dto.CheckoutRequest{})
	require.NoError(t, err)

	require.NotEmpty(t, f.movs.movs)
	m := f.movs.movs[0]
	assert.Equal(t, resp.ID, ledger.DeriveSaleID(m))

	// mesmo sem a coluna (movimento histórico), o token nas observações
	// ainda leva de volta à venda
	m.SaleID = ""
	assert.Equal(t, resp.ID, ledger.DeriveSaleID(m))
}
