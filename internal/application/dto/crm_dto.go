package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRequest crear o actualizar un cliente.
type CustomerRequest struct {
	Type      string `json:"type" validate:"required,oneof=individual corporate"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	TaxNumber string `json:"tax_number" validate:"omitempty,numeric,min=10,max=11"`
	TaxOffice string `json:"tax_office" validate:"omitempty,max=100"`
	Address   string `json:"address" validate:"omitempty,max=500"`
	City      string `json:"city" validate:"omitempty,max=100"`
	Notes     string `json:"notes" validate:"omitempty,max=2000"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	TaxNumber string    `json:"tax_number"`
	TaxOffice string    `json:"tax_office"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// NoteRequest nota sobre un cliente.
type NoteRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// NoteResponse salida de una nota.
type NoteResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// AttachmentResponse metadatos del archivo; URL es temporal (presigned).
type AttachmentResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DealRequest crear o actualizar una oportunidad.
type DealRequest struct {
	CustomerID        string          `json:"customer_id" validate:"required,uuid"`
	Title             string          `json:"title" validate:"required,min=1,max=200"`
	Value             decimal.Decimal `json:"value" validate:"gte=0"`
	Currency          string          `json:"currency" validate:"omitempty,len=3"`
	Stage             string          `json:"stage" validate:"omitempty,oneof=lead proposal negotiation won lost"`
	ExpectedCloseDate *time.Time      `json:"expected_close_date"`
	Notes             string          `json:"notes" validate:"omitempty,max=2000"`
}

// DealStageRequest cambio de etapa (PATCH /deals/:id/stage).
type DealStageRequest struct {
	Stage string `json:"stage" validate:"required,oneof=lead proposal negotiation won lost"`
}

// DealResponse salida de una oportunidad.
type DealResponse struct {
	ID                string          `json:"id"`
	CustomerID        string          `json:"customer_id"`
	Title             string          `json:"title"`
	Value             decimal.Decimal `json:"value"`
	Currency          string          `json:"currency"`
	Stage             string          `json:"stage"`
	ExpectedCloseDate *time.Time      `json:"expected_close_date,omitempty"`
	Notes             string          `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ActivityRequest crear o actualizar una actividad.
type ActivityRequest struct {
	CustomerID  string     `json:"customer_id" validate:"required,uuid"`
	DealID      *string    `json:"deal_id" validate:"omitempty,uuid"`
	Type        string     `json:"type" validate:"required,oneof=call email meeting task"`
	Subject     string     `json:"subject" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date"`
	Completed   bool       `json:"completed"`
}

// ActivityResponse salida de una actividad.
type ActivityResponse struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customer_id"`
	DealID      *string    `json:"deal_id,omitempty"`
	Type        string     `json:"type"`
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
