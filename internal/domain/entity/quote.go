package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cotización.
const (
	QuoteStatusDraft     = "draft"
	QuoteStatusSent      = "sent"
	QuoteStatusAccepted  = "accepted"
	QuoteStatusRejected  = "rejected"
	QuoteStatusConverted = "converted"
)

// Quote cotización (teklif) enviada a un cliente.
type Quote struct {
	ID                 string
	UserID             string
	CustomerID         string
	QuoteNumber        string
	IssueDate          time.Time
	ValidUntil         *time.Time
	Status             string
	Currency           string
	PricesIncludeTax   bool
	Subtotal           decimal.Decimal
	TaxAmount          decimal.Decimal
	TotalAmount        decimal.Decimal
	Notes              string
	PublicToken        string
	ConvertedInvoiceID *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// QuoteItem línea de cotización.
type QuoteItem struct {
	ID          string
	QuoteID     string
	ProductID   *string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	TaxAmount   decimal.Decimal
	LineTotal   decimal.Decimal
	Position    int
}

// CanRespond indica si el cliente todavía puede aceptar o rechazar la cotización.
func (q *Quote) CanRespond() bool {
	return q.Status == QuoteStatusDraft || q.Status == QuoteStatusSent
}
