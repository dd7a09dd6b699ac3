package entity

import "time"

// Customer representa um cliente cadastrado da livraria.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}
