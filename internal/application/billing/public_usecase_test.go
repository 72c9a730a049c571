package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdnizduru/finans-proje/internal/application/billing"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

func TestPublicQuote_AceptarSoloUnaVez(t *testing.T) {
	f := newFixture()
	quotes := billing.NewQuoteUseCase(f.quotes, f.customers, f.tx, nil)
	public := billing.NewPublicUseCase(f.invoices, f.quotes, f.customers, f.company, nil)
	ctx := context.Background()

	q, err := quotes.Create(ctx, userID, quoteRequest())
	require.NoError(t, err)

	doc, err := public.GetQuote(ctx, q.PublicToken)
	require.NoError(t, err)
	assert.Equal(t, "quote", doc.Kind)
	assert.Equal(t, q.QuoteNumber, doc.Number)
	assert.True(t, doc.CanRespond)
	require.NotNil(t, doc.Company)
	assert.Equal(t, "Mavi Tur", doc.Company.Name)
	require.NotNil(t, doc.Customer)
	assert.Equal(t, "Ayşe Kaya", doc.Customer.Name)
	assert.Len(t, doc.Items, 2)

	assert.ErrorIs(t, public.RespondQuote(ctx, q.PublicToken, entity.QuoteStatusConverted), domain.ErrInvalidInput)
	require.NoError(t, public.RespondQuote(ctx, q.PublicToken, entity.QuoteStatusAccepted))
	assert.Equal(t, entity.QuoteStatusAccepted, f.quotes.rows[q.ID].Status)

	assert.ErrorIs(t, public.RespondQuote(ctx, q.PublicToken, entity.QuoteStatusRejected), domain.ErrConflict)

	doc, err = public.GetQuote(ctx, q.PublicToken)
	require.NoError(t, err)
	assert.False(t, doc.CanRespond)
}

func TestPublic_TokenInvalido(t *testing.T) {
	f := newFixture()
	public := billing.NewPublicUseCase(f.invoices, f.quotes, f.customers, f.company, nil)
	ctx := context.Background()

	_, err := public.GetQuote(ctx, "no-es-un-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = public.GetInvoice(ctx, "4f0c5d4e-3a0b-4c55-9a1e-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, public.RespondQuote(ctx, "x", entity.QuoteStatusAccepted), domain.ErrNotFound)
}

func TestPublicInvoice(t *testing.T) {
	f := newFixture()
	invoices := billing.NewInvoiceUseCase(f.invoices, f.customers, f.tx, nil)
	public := billing.NewPublicUseCase(f.invoices, f.quotes, f.customers, f.company, nil)
	ctx := context.Background()

	inv, err := invoices.Create(ctx, userID, invoiceRequest(false, quoteRequest().Items...))
	require.NoError(t, err)

	doc, err := public.GetInvoice(ctx, inv.PublicToken)
	require.NoError(t, err)
	assert.Equal(t, "invoice", doc.Kind)
	assert.False(t, doc.CanRespond)
	assert.True(t, inv.TotalAmount.Equal(doc.TotalAmount))
}
