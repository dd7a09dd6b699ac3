package checkout

import (
	"sync"

	"github.com/ruanmp/livraria-pos/internal/domain/pos"
)

// CartRegistry guarda o carrinho de cada sessão de caixa. Cada carrinho
// tem um único escritor (a própria sessão); o mapa é o recurso
// compartilhado entre sessões e por isso é o que leva o lock.
type CartRegistry struct {
	mu    sync.RWMutex
	carts map[string]*pos.Cart
}

// NewCartRegistry cria o registro vazio.
func NewCartRegistry() *CartRegistry {
	return &CartRegistry{carts: make(map[string]*pos.Cart)}
}

// Get devolve o carrinho da sessão, criando um vazio na primeira chamada.
func (r *CartRegistry) Get(sessionID string) *pos.Cart {
	r.mu.RLock()
	c, ok := r.carts[sessionID]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[sessionID]; ok {
		return c
	}
	c = pos.NewCart()
	r.carts[sessionID] = c
	return c
}

// Drop descarta o carrinho da sessão (teardown no logout).
func (r *CartRegistry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
}
