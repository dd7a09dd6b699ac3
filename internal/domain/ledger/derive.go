// Package ledger contém as regras de domínio do livro-razão de estoque
// que não dependem de persistência.
package ledger

import (
	"regexp"

	"github.com/ruanmp/livraria-pos/internal/domain/entity"
)

// Token de referência de venda gravado nas observações dos movimentos
// antigos: "Venda #<id>", com id alfanumérico com hífens.
var saleRefPattern = regexp.MustCompile(`Venda #([A-Za-z0-9-]+)`)

// DeriveSaleID recupera o id da venda que originou o movimento. A coluna
// sale_id é a fonte preferida; a varredura das observações existe só como
// camada de compatibilidade para movimentos gravados antes da coluna, e só
// vale para saídas com motivo "venda". Retorna vazio quando o movimento
// não veio de uma venda.
func DeriveSaleID(m *entity.StockMovement) string {
	if m == nil {
		return ""
	}
	if m.SaleID != "" {
		return m.SaleID
	}
	if m.Type != entity.MovementTypeSaida || m.Reason != entity.MovementReasonVenda {
		return ""
	}
	if match := saleRefPattern.FindStringSubmatch(m.Notes); match != nil {
		return match[1]
	}
	return ""
}
