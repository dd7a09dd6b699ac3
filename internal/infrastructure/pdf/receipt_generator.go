// Package pdf implementa a geração do cupom não fiscal da livraria.
//
// Layout da página A4:
//
//	┌──────────────────────────────────────────────────────┐
//	│  HEADER: Nome da loja      │  N° Venda + Data/Hora   │
//	│  ──────────────────────────────────────────────────  │
//	│  CLIENTE (se identificado) + OPERADOR DE CAIXA       │
//	│  ──────────────────────────────────────────────────  │
//	│  TABELA: Qtd | Título | Preço Unit. | Desc. | Total  │
//	│  ──────────────────────────────────────────────────  │
//	│  TOTAIS: Subtotal / Descontos / TOTAL + pagamento    │
//	│  ──────────────────────────────────────────────────  │
//	│  RODAPÉ: mensagem da loja                            │
//	└──────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ruanmp/livraria-pos/internal/application/checkout"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/pkg/money"
)

var (
	colorPrimary = &props.Color{Red: 120, Green: 60, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ checkout.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa checkout.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	storeName string
	footer    string
}

// NewMarotoReceiptGenerator constrói o gerador com os dados da loja.
func NewMarotoReceiptGenerator(storeName, footer string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{storeName: storeName, footer: footer}
}

// GenerateReceiptPDF gera o cupom e devolve os bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	sale *entity.Sale,
	items []*entity.SaleItem,
	customer *entity.Customer,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cupom de Venda", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(sale, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nome da loja (esq) e número da venda + data (dir).
func (g *MarotoReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	data := sale.CreatedAt.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CUPOM NÃO FISCAL", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Venda #"+sale.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3,
			}),
			text.New("Data: "+data, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// partiesRow: cliente (ou consumidor final) e forma de pagamento.
func partiesRow(sale *entity.Sale, customer *entity.Customer) core.Row {
	name := "Consumidor final"
	if customer != nil {
		name = customer.Name
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Cliente: "+name, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			}),
			text.New("Pagamento: "+paymentLabel(sale.PaymentMethod), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd", 1, align.Center),
		h("Título", 5, align.Left),
		h("Preço Unit.", 2, align.Right),
		h("Desconto", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableItemRows: uma fila por item da venda.
func tableItemRows(items []*entity.SaleItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Title,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money.FormatBRL(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				money.FormatBRL(it.Discount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				money.FormatBRL(it.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloco de totais alinhado à direita.
func totalsRow(sale *entity.Sale) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("Descontos:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value(money.FormatBRL(sale.Subtotal)),
			value(money.FormatBRL(sale.DiscountTotal)),
			grandValue(money.FormatBRL(sale.Total)),
		),
		col.New(3),
	)
}

func (g *MarotoReceiptGenerator) footerRow() core.Row {
	msg := g.footer
	if msg == "" {
		msg = "Obrigado pela preferência. Volte sempre!"
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(msg, props.Text{
			Size: 8, Align: align.Center, Color: colorGray, Top: 2,
		}),
	))
}

func paymentLabel(method string) string {
	switch method {
	case entity.PaymentDinheiro:
		return "Dinheiro"
	case entity.PaymentCartao:
		return "Cartão"
	case entity.PaymentPix:
		return "Pix"
	default:
		return method
	}
}
