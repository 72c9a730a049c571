package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentItemRequest línea de factura o cotización.
type DocumentItemRequest struct {
	ProductID   *string         `json:"product_id" validate:"omitempty,uuid"`
	Description string          `json:"description" validate:"required,min=1,max=500"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gte=0"`
	TaxRate     decimal.Decimal `json:"tax_rate" validate:"gte=0,lte=100"`
}

// DocumentItemResponse línea calculada.
type DocumentItemResponse struct {
	ID          string          `json:"id"`
	ProductID   *string         `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceRequest crear o reemplazar una factura (cabecera + líneas).
// InvoiceNumber vacío = numeración automática INV-<año>-<secuencia>.
type InvoiceRequest struct {
	CustomerID       string                `json:"customer_id" validate:"required,uuid"`
	InvoiceNumber    string                `json:"invoice_number" validate:"omitempty,max=50"`
	IssueDate        time.Time             `json:"issue_date" validate:"required"`
	DueDate          *time.Time            `json:"due_date"`
	Status           string                `json:"status" validate:"omitempty,oneof=draft sent paid overdue cancelled"`
	Currency         string                `json:"currency" validate:"omitempty,len=3"`
	PricesIncludeTax bool                  `json:"prices_include_tax"`
	Notes            string                `json:"notes" validate:"omitempty,max=2000"`
	Items            []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// StatusRequest cambio de estado de un documento.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// InvoiceResponse factura con líneas (Items vacío en listados).
type InvoiceResponse struct {
	ID               string                 `json:"id"`
	CustomerID       string                 `json:"customer_id"`
	InvoiceNumber    string                 `json:"invoice_number"`
	IssueDate        time.Time              `json:"issue_date"`
	DueDate          *time.Time             `json:"due_date,omitempty"`
	Status           string                 `json:"status"`
	Currency         string                 `json:"currency"`
	PricesIncludeTax bool                   `json:"prices_include_tax"`
	Subtotal         decimal.Decimal        `json:"subtotal"`
	TaxAmount        decimal.Decimal        `json:"tax_amount"`
	TotalAmount      decimal.Decimal        `json:"total_amount"`
	Notes            string                 `json:"notes"`
	PublicToken      string                 `json:"public_token"`
	TicketID         *string                `json:"ticket_id,omitempty"`
	QuoteID          *string                `json:"quote_id,omitempty"`
	Items            []DocumentItemResponse `json:"items,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// QuoteRequest crear o reemplazar una cotización.
type QuoteRequest struct {
	CustomerID       string                `json:"customer_id" validate:"required,uuid"`
	QuoteNumber      string                `json:"quote_number" validate:"omitempty,max=50"`
	IssueDate        time.Time             `json:"issue_date" validate:"required"`
	ValidUntil       *time.Time            `json:"valid_until"`
	Status           string                `json:"status" validate:"omitempty,oneof=draft sent accepted rejected"`
	Currency         string                `json:"currency" validate:"omitempty,len=3"`
	PricesIncludeTax bool                  `json:"prices_include_tax"`
	Notes            string                `json:"notes" validate:"omitempty,max=2000"`
	Items            []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// QuoteResponse cotización con líneas.
type QuoteResponse struct {
	ID                 string                 `json:"id"`
	CustomerID         string                 `json:"customer_id"`
	QuoteNumber        string                 `json:"quote_number"`
	IssueDate          time.Time              `json:"issue_date"`
	ValidUntil         *time.Time             `json:"valid_until,omitempty"`
	Status             string                 `json:"status"`
	Currency           string                 `json:"currency"`
	PricesIncludeTax   bool                   `json:"prices_include_tax"`
	Subtotal           decimal.Decimal        `json:"subtotal"`
	TaxAmount          decimal.Decimal        `json:"tax_amount"`
	TotalAmount        decimal.Decimal        `json:"total_amount"`
	Notes              string                 `json:"notes"`
	PublicToken        string                 `json:"public_token"`
	ConvertedInvoiceID *string                `json:"converted_invoice_id,omitempty"`
	Items              []DocumentItemResponse `json:"items,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// QuoteListResponse lista paginada de cotizaciones.
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// PublicPartyDTO datos mínimos de emisor o receptor en la vista pública.
type PublicPartyDTO struct {
	Name      string `json:"name"`
	TaxNumber string `json:"tax_number,omitempty"`
	TaxOffice string `json:"tax_office,omitempty"`
	Address   string `json:"address,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// PublicDocumentResponse factura o cotización vista por el cliente final sin sesión.
type PublicDocumentResponse struct {
	Kind             string                 `json:"kind"` // invoice, quote
	Number           string                 `json:"number"`
	IssueDate        time.Time              `json:"issue_date"`
	DueDate          *time.Time             `json:"due_date,omitempty"`
	Status           string                 `json:"status"`
	Currency         string                 `json:"currency"`
	PricesIncludeTax bool                   `json:"prices_include_tax"`
	Subtotal         decimal.Decimal        `json:"subtotal"`
	TaxAmount        decimal.Decimal        `json:"tax_amount"`
	TotalAmount      decimal.Decimal        `json:"total_amount"`
	Notes            string                 `json:"notes,omitempty"`
	Company          *PublicPartyDTO        `json:"company,omitempty"`
	Customer         *PublicPartyDTO        `json:"customer,omitempty"`
	Items            []DocumentItemResponse `json:"items"`
	CanRespond       bool                   `json:"can_respond"`
}

// PublicQuoteStatusRequest respuesta del cliente a una cotización.
type PublicQuoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}
