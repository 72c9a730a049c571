package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountRequest crear o actualizar una cuenta.
type AccountRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=100"`
	Type           string          `json:"type" validate:"required,oneof=cash bank credit_card"`
	Currency       string          `json:"currency" validate:"omitempty,len=3"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// AccountResponse salida de una cuenta con saldo calculado.
type AccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TransactionRequest crear o actualizar un movimiento.
type TransactionRequest struct {
	Type        string          `json:"type" validate:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Currency    string          `json:"currency" validate:"omitempty,len=3"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Date        time.Time       `json:"date" validate:"required"`
	AccountID   *string         `json:"account_id" validate:"omitempty,uuid"`
	CategoryID  *string         `json:"category_id" validate:"omitempty,uuid"`
	CustomerID  *string         `json:"customer_id" validate:"omitempty,uuid"`
	InvoiceID   *string         `json:"invoice_id" validate:"omitempty,uuid"`
}

// TransactionResponse salida de un movimiento.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	AccountID   *string         `json:"account_id,omitempty"`
	CategoryID  *string         `json:"category_id,omitempty"`
	CustomerID  *string         `json:"customer_id,omitempty"`
	InvoiceID   *string         `json:"invoice_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransactionListResponse lista paginada de movimientos.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
