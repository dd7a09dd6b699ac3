package checkout

import (
	"context"
	"fmt"

	"github.com/ruanmp/livraria-pos/internal/domain"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/internal/domain/repository"
)

// ReceiptPDFGenerator gera o cupom não fiscal (PDF) de uma venda finalizada.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(
		ctx context.Context,
		sale *entity.Sale,
		items []*entity.SaleItem,
		customer *entity.Customer,
	) ([]byte, error)
}

// ReceiptUseCase monta e gera o cupom de uma venda já gravada.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	generator    ReceiptPDFGenerator
}

// NewReceiptUseCase constrói o caso de uso do cupom.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, customerRepo: customerRepo, generator: generator}
}

// DownloadReceiptPDF carrega a venda, os itens e o cliente (se houver) e
// gera o cupom. Devolve domain.ErrNotFound se a venda não existe.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("cupom: obter venda: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("cupom: obter itens: %w", err)
	}

	var customer *entity.Customer
	if sale.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(sale.CustomerID)
		if err != nil {
			return nil, "", fmt.Errorf("cupom: obter cliente: %w", err)
		}
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, sale, items, customer)
	if err != nil {
		return nil, "", fmt.Errorf("cupom: geração falhou: %w", err)
	}
	return pdfBytes, fmt.Sprintf("cupom_%s.pdf", sale.ID), nil
}
