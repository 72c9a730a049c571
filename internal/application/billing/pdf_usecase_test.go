package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdnizduru/finans-proje/internal/application/billing"
	"github.com/gkdnizduru/finans-proje/internal/application/ports"
	"github.com/gkdnizduru/finans-proje/internal/domain"
)

type captureGenerator struct {
	doc *ports.PDFDocument
}

func (g *captureGenerator) GenerateDocumentPDF(_ context.Context, doc *ports.PDFDocument) ([]byte, error) {
	g.doc = doc
	return []byte("%PDF-1.4"), nil
}

func TestDownloadInvoicePDF(t *testing.T) {
	f := newFixture()
	invoices := billing.NewInvoiceUseCase(f.invoices, f.customers, f.tx, nil)
	gen := &captureGenerator{}
	uc := billing.NewPDFUseCase(f.invoices, f.quotes, f.company, f.customers, gen, "https://acente.example.com")
	ctx := context.Background()

	inv, err := invoices.Create(ctx, userID, invoiceRequest(false, quoteRequest().Items...))
	require.NoError(t, err)

	b, name, err := uc.DownloadInvoicePDF(ctx, userID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), b)
	assert.Equal(t, "fatura_INV-2026-0001.pdf", name)
	require.NotNil(t, gen.doc)
	assert.Equal(t, ports.DocumentInvoice, gen.doc.Kind)
	assert.Equal(t, "https://acente.example.com/api/public/invoices/"+inv.PublicToken, gen.doc.PublicURL)
	assert.Len(t, gen.doc.Lines, 2)
	assert.Equal(t, "Mavi Tur", gen.doc.Company.Name)
	assert.Equal(t, "Ayşe Kaya", gen.doc.Customer.Name)

	_, _, err = uc.DownloadInvoicePDF(ctx, "otro-usuario", inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadQuotePDF(t *testing.T) {
	f := newFixture()
	quotes := billing.NewQuoteUseCase(f.quotes, f.customers, f.tx, nil)
	gen := &captureGenerator{}
	uc := billing.NewPDFUseCase(f.invoices, f.quotes, f.company, f.customers, gen, "http://localhost:8080")
	ctx := context.Background()

	q, err := quotes.Create(ctx, userID, quoteRequest())
	require.NoError(t, err)
	_, name, err := uc.DownloadQuotePDF(ctx, userID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "teklif_QUO-2026-0001.pdf", name)
	assert.Equal(t, ports.DocumentQuote, gen.doc.Kind)
	assert.Equal(t, "http://localhost:8080/api/public/quotes/"+q.PublicToken, gen.doc.PublicURL)
}
