package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Impressora pt-BR: ponto como separador de milhar e vírgula decimal.
var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL formata um valor como Real brasileiro (R$ 1.234,56).
// Só para exibição; toda a aritmética interna usa decimal.
func FormatBRL(amount decimal.Decimal) string {
	f, _ := ToCurrency(amount).Float64()
	return brPrinter.Sprintf("R$ %.2f", f)
}
