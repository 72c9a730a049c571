package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta.
const (
	AccountTypeCash       = "cash"
	AccountTypeBank       = "bank"
	AccountTypeCreditCard = "credit_card"
)

// Account caja, cuenta bancaria o tarjeta. Balance = OpeningBalance + ingresos - egresos.
type Account struct {
	ID             string
	UserID         string
	Name           string
	Type           string
	Currency       string
	OpeningBalance decimal.Decimal
	Balance        decimal.Decimal // calculado en lectura, no se persiste
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
