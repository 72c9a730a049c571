package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de factura.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice cabecera de factura. TotalAmount = Subtotal + TaxAmount lo escribe el servicio.
type Invoice struct {
	ID               string
	UserID           string
	CustomerID       string
	InvoiceNumber    string
	IssueDate        time.Time
	DueDate          *time.Time
	Status           string
	Currency         string
	PricesIncludeTax bool
	Subtotal         decimal.Decimal
	TaxAmount        decimal.Decimal
	TotalAmount      decimal.Decimal
	Notes            string
	PublicToken      string // acceso público sin sesión
	TicketID         *string // factura generada desde un billete
	QuoteID          *string // factura generada desde una cotización
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// InvoiceItem línea de factura.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	ProductID   *string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // porcentaje 0–100
	TaxAmount   decimal.Decimal
	LineTotal   decimal.Decimal
	Position    int
}

// IsOpen indica si la factura sigue pendiente de cobro.
func (i *Invoice) IsOpen() bool {
	return i.Status == InvoiceStatusSent || i.Status == InvoiceStatusOverdue
}
