package entity

import "time"

// SessionContext identifica a sessão de caixa corrente. Substitui o estado
// global de sessão: é criado no login, passado explicitamente para o
// finalizador de venda e para o livro-razão de estoque, e descartado no
// logout.
type SessionContext struct {
	SessionID   string
	CashierID   string
	CashierName string
	OpenedAt    time.Time
}
