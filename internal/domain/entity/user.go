package entity

import "time"

// Papéis de usuário.
const (
	RoleAdmin = "admin"
	RoleCaixa = "caixa"
)

// User representa um operador do sistema (admin ou caixa).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | caixa
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
