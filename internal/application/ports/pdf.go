package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

// Tipos de documento imprimible.
const (
	DocumentInvoice = "invoice"
	DocumentQuote   = "quote"
)

// PDFLine línea ya calculada del documento.
type PDFLine struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	TaxAmount   decimal.Decimal
	LineTotal   decimal.Decimal
}

// PDFDocument datos de una factura o cotización listos para imprimir.
// Company puede ser nil si el usuario no completó su perfil.
type PDFDocument struct {
	Kind             string
	Number           string
	IssueDate        time.Time
	DueDate          *time.Time // vencimiento (factura) o validez (cotización)
	Status           string
	Currency         string
	PricesIncludeTax bool
	Company          *entity.CompanyProfile
	Customer         *entity.Customer
	Lines            []PDFLine
	Subtotal         decimal.Decimal
	TaxAmount        decimal.Decimal
	Total            decimal.Decimal
	Notes            string
	PublicURL        string // se imprime como QR si no está vacío
}

// DocumentPDFGenerator genera el PDF de facturas y cotizaciones.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *PDFDocument) ([]byte, error)
}
