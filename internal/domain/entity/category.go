package entity

import "time"

// Tipos de categoría (coinciden con los tipos de transacción).
const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"
)

// Category clasifica transacciones financieras.
type Category struct {
	ID        string
	UserID    string
	Name      string
	Type      string // income, expense
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
