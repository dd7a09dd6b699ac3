package entity

import "time"

// Tipos de movimentação de estoque.
const (
	MovementTypeEntrada = "entrada"
	MovementTypeSaida   = "saida"
)

// Motivos de movimentação.
const (
	MovementReasonVenda     = "venda"
	MovementReasonAjuste    = "ajuste"
	MovementReasonReposicao = "reposicao"
)

// StockMovement é um lançamento imutável do livro-razão de estoque.
// Nunca é alterado nem apagado depois de gravado; o estoque atual do livro
// deve ser sempre igual ao estoque inicial mais a soma assinada dos
// movimentos (entrada positiva, saída negativa).
type StockMovement struct {
	ID          string
	BookID      string
	Type        string // entrada | saida
	Quantity    int    // sempre positivo; o sinal vem do tipo
	Reason      string // venda, ajuste, reposicao
	Notes       string
	SaleID      string // vazio quando o movimento não veio de uma venda
	Responsible string // nome do operador de caixa
	CreatedAt   time.Time
}
