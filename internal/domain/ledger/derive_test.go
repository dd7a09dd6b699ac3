package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/internal/domain/ledger"
)

func TestDeriveSaleID_ColunaPreferida(t *testing.T) {
	m := &entity.StockMovement{
		Type:   entity.MovementTypeSaida,
		Reason: entity.MovementReasonVenda,
		SaleID: "sale-42",
		Notes:  "Venda #outro-id",
	}
	assert.Equal(t, "sale-42", ledger.DeriveSaleID(m), "a coluna sale_id vence a varredura das observações")
}

func TestDeriveSaleID_FallbackNasObservacoes(t *testing.T) {
	m := &entity.StockMovement{
		Type:   entity.MovementTypeSaida,
		Reason: entity.MovementReasonVenda,
		Notes:  "Venda #abc-123",
	}
	assert.Equal(t, "abc-123", ledger.DeriveSaleID(m))
}

func TestDeriveSaleID_MotivoErradoNaoDeriva(t *testing.T) {
	m := &entity.StockMovement{
		Type:   entity.MovementTypeSaida,
		Reason: entity.MovementReasonAjuste,
		Notes:  "Venda #abc-123",
	}
	assert.Empty(t, ledger.DeriveSaleID(m), "só saídas com motivo venda derivam id")
}

func TestDeriveSaleID_EntradaNaoDeriva(t *testing.T) {
	m := &entity.StockMovement{
		Type:   entity.MovementTypeEntrada,
		Reason: entity.MovementReasonVenda,
		Notes:  "Venda #abc-123",
	}
	assert.Empty(t, ledger.DeriveSaleID(m))
}

func TestDeriveSaleID_ObservacoesSemToken(t *testing.T) {
	m := &entity.StockMovement{
		Type:   entity.MovementTypeSaida,
		Reason: entity.MovementReasonVenda,
		Notes:  "saída avulsa do balcão",
	}
	assert.Empty(t, ledger.DeriveSaleID(m))
}

func TestDeriveSaleID_NilSeguro(t *testing.T) {
	assert.Empty(t, ledger.DeriveSaleID(nil))
}
