package repository

import (
	"context"

	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

// DocumentFilter filtros comunes a facturas y cotizaciones.
type DocumentFilter struct {
	Status     string
	CustomerID string
	Limit      int
	Offset     int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	// Update reescribe la cabecera (totales incluidos); las líneas se reemplazan con DeleteItems + CreateItem.
	Update(ctx context.Context, invoice *entity.Invoice) error
	UpdateStatus(ctx context.Context, userID, id, status string) error
	GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error)
	GetByPublicToken(ctx context.Context, token string) (*entity.Invoice, error)
	GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	List(ctx context.Context, userID string, f DocumentFilter) ([]*entity.Invoice, int, error)
	// MaxSequence mayor secuencia usada en números <prefijo>-<año>-NNNN; 0 si no hay ninguno.
	MaxSequence(ctx context.Context, userID, prefix string, year int) (int, error)
	DeleteItems(ctx context.Context, invoiceID string) error
	Delete(ctx context.Context, userID, id string) error
	// DeleteByCustomer borra líneas y facturas del cliente.
	DeleteByCustomer(ctx context.Context, userID, customerID string) error
}

// QuoteRepository define el puerto de persistencia para Quote y sus líneas.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	CreateItem(ctx context.Context, item *entity.QuoteItem) error
	Update(ctx context.Context, quote *entity.Quote) error
	UpdateStatus(ctx context.Context, userID, id, status string) error
	// MarkConverted pasa la cotización a converted con la factura generada.
	MarkConverted(ctx context.Context, userID, id, invoiceID string) error
	// ReleaseConversion devuelve a accepted la cotización convertida en esa factura (si existe).
	ReleaseConversion(ctx context.Context, userID, invoiceID string) error
	GetByID(ctx context.Context, userID, id string) (*entity.Quote, error)
	GetByPublicToken(ctx context.Context, token string) (*entity.Quote, error)
	// UpdateStatusByToken cambia el estado desde el acceso público.
	UpdateStatusByToken(ctx context.Context, token, status string) error
	GetItems(ctx context.Context, quoteID string) ([]*entity.QuoteItem, error)
	List(ctx context.Context, userID string, f DocumentFilter) ([]*entity.Quote, int, error)
	MaxSequence(ctx context.Context, userID, prefix string, year int) (int, error)
	DeleteItems(ctx context.Context, quoteID string) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByCustomer(ctx context.Context, userID, customerID string) error
}
