package billing

import (
	"context"
	"fmt"

	"github.com/gkdnizduru/finans-proje/internal/application/ports"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

// PDFUseCase genera el PDF de facturas y cotizaciones, con un QR al enlace público.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	quoteRepo    repository.QuoteRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	generator    ports.DocumentPDFGenerator
	publicURL    string // base pública de la API, sin "/" final
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	quoteRepo repository.QuoteRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	generator ports.DocumentPDFGenerator,
	publicURL string,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		quoteRepo:    quoteRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		generator:    generator,
		publicURL:    publicURL,
	}
}

// PublicInvoiceURL enlace público de una factura.
func PublicInvoiceURL(base, token string) string {
	return base + "/api/public/invoices/" + token
}

// PublicQuoteURL enlace público de una cotización.
func PublicQuoteURL(base, token string) string {
	return base + "/api/public/quotes/" + token
}

// DownloadInvoicePDF recupera la factura con sus líneas, la empresa y el cliente y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe o es de otro usuario.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, userID, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	doc := &ports.PDFDocument{
		Kind:             ports.DocumentInvoice,
		Number:           inv.InvoiceNumber,
		IssueDate:        inv.IssueDate,
		DueDate:          inv.DueDate,
		Status:           inv.Status,
		Currency:         inv.Currency,
		PricesIncludeTax: inv.PricesIncludeTax,
		Subtotal:         inv.Subtotal,
		TaxAmount:        inv.TaxAmount,
		Total:            inv.TotalAmount,
		Notes:            inv.Notes,
		PublicURL:        PublicInvoiceURL(uc.publicURL, inv.PublicToken),
	}
	for _, it := range items {
		doc.Lines = append(doc.Lines, ports.PDFLine{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			TaxAmount:   it.TaxAmount,
			LineTotal:   it.LineTotal,
		})
	}
	if err := uc.fillParties(ctx, doc, userID, inv.CustomerID); err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateDocumentPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("fatura_%s.pdf", inv.InvoiceNumber), nil
}

// DownloadQuotePDF igual que DownloadInvoicePDF para cotizaciones.
func (uc *PDFUseCase) DownloadQuotePDF(ctx context.Context, userID, quoteID string) (pdfBytes []byte, filename string, err error) {
	q, err := uc.quoteRepo.GetByID(ctx, userID, quoteID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cotización: %w", err)
	}
	if q == nil {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.quoteRepo.GetItems(ctx, q.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	doc := &ports.PDFDocument{
		Kind:             ports.DocumentQuote,
		Number:           q.QuoteNumber,
		IssueDate:        q.IssueDate,
		DueDate:          q.ValidUntil,
		Status:           q.Status,
		Currency:         q.Currency,
		PricesIncludeTax: q.PricesIncludeTax,
		Subtotal:         q.Subtotal,
		TaxAmount:        q.TaxAmount,
		Total:            q.TotalAmount,
		Notes:            q.Notes,
		PublicURL:        PublicQuoteURL(uc.publicURL, q.PublicToken),
	}
	for _, it := range items {
		doc.Lines = append(doc.Lines, ports.PDFLine{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			TaxAmount:   it.TaxAmount,
			LineTotal:   it.LineTotal,
		})
	}
	if err := uc.fillParties(ctx, doc, userID, q.CustomerID); err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateDocumentPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("teklif_%s.pdf", q.QuoteNumber), nil
}

func (uc *PDFUseCase) fillParties(ctx context.Context, doc *ports.PDFDocument, userID, customerID string) error {
	company, err := uc.companyRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	customer, err := uc.customerRepo.GetByID(ctx, userID, customerID)
	if err != nil {
		return fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	doc.Company = company
	doc.Customer = customer
	return nil
}
