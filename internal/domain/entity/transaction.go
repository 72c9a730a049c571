package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción.
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Transaction movimiento financiero. Las referencias son opcionales (nil = sin vínculo).
type Transaction struct {
	ID          string
	UserID      string
	Type        string // income, expense
	Amount      decimal.Decimal
	Currency    string
	Description string
	Date        time.Time
	AccountID   *string
	CategoryID  *string
	CustomerID  *string
	InvoiceID   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
