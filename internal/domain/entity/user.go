package entity

import "time"

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User representa al usuario autenticado dueño de todas las filas (aplicación mono-tenant).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
