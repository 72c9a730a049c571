package billing_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdnizduru/finans-proje/internal/application/billing"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

func quoteRequest() dto.QuoteRequest {
	return dto.QuoteRequest{
		CustomerID: customerID,
		IssueDate:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Items: []dto.DocumentItemRequest{
			{Description: "Kapadokya turu", Quantity: d("2"), UnitPrice: d("1500"), TaxRate: d("20")},
			{Description: "Rehber", Quantity: d("1"), UnitPrice: d("400"), TaxRate: d("10")},
		},
	}
}

func TestQuoteConvert(t *testing.T) {
	f := newFixture()
	uc := billing.NewQuoteUseCase(f.quotes, f.customers, f.tx, nil)
	ctx := context.Background()

	q, err := uc.Create(ctx, userID, quoteRequest())
	require.NoError(t, err)
	assert.Equal(t, "QUO-2026-0001", q.QuoteNumber)
	assert.True(t, d("3400").Equal(q.Subtotal))
	assert.True(t, d("640").Equal(q.TaxAmount))

	inv, err := uc.Convert(ctx, userID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	require.NotNil(t, inv.QuoteID)
	assert.Equal(t, q.ID, *inv.QuoteID)
	assert.True(t, q.TotalAmount.Equal(inv.TotalAmount))
	assert.True(t, q.Subtotal.Equal(inv.Subtotal))
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "Kapadokya turu", inv.Items[0].Description)
	assert.Len(t, f.invoices.items[inv.ID], 2)

	stored := f.quotes.rows[q.ID]
	assert.Equal(t, entity.QuoteStatusConverted, stored.Status)
	require.NotNil(t, stored.ConvertedInvoiceID)
	assert.Equal(t, inv.ID, *stored.ConvertedInvoiceID)

	_, err = uc.Convert(ctx, userID, q.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, f.invoices.rows, 1)

	_, err = uc.Update(ctx, userID, q.ID, quoteRequest())
	assert.ErrorIs(t, err, domain.ErrConflict, "una cotización convertida no se edita")
	assert.ErrorIs(t, uc.UpdateStatus(ctx, userID, q.ID, entity.QuoteStatusSent), domain.ErrConflict)
}

func TestQuoteConvert_RechazadaOInexistente(t *testing.T) {
	f := newFixture()
	uc := billing.NewQuoteUseCase(f.quotes, f.customers, f.tx, nil)
	ctx := context.Background()

	_, err := uc.Convert(ctx, userID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	q, err := uc.Create(ctx, userID, quoteRequest())
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(ctx, userID, q.ID, entity.QuoteStatusRejected))
	_, err = uc.Convert(ctx, userID, q.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.invoices.rows)
}

func TestQuoteUpdateStatus_NoPermiteConverted(t *testing.T) {
	f := newFixture()
	uc := billing.NewQuoteUseCase(f.quotes, f.customers, f.tx, nil)
	ctx := context.Background()
	q, err := uc.Create(ctx, userID, quoteRequest())
	require.NoError(t, err)
	assert.ErrorIs(t, uc.UpdateStatus(ctx, userID, q.ID, entity.QuoteStatusConverted), domain.ErrInvalidInput)
}

func TestQuoteCreate_NumeracionTrasBorrado(t *testing.T) {
	f := newFixture()
	uc := billing.NewQuoteUseCase(f.quotes, f.customers, f.tx, nil)
	ctx := context.Background()

	first, err := uc.Create(ctx, userID, quoteRequest())
	require.NoError(t, err)
	_, err = uc.Create(ctx, userID, quoteRequest())
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, userID, first.ID))

	q, err := uc.Create(ctx, userID, quoteRequest())
	require.NoError(t, err)
	assert.Equal(t, "QUO-2026-0003", q.QuoteNumber)
}

func TestQuoteConvert_BorrarFacturaPermiteReconvertir(t *testing.T) {
	f := newFixture()
	quotes := billing.NewQuoteUseCase(f.quotes, f.customers, f.tx, nil)
	invoices := billing.NewInvoiceUseCase(f.invoices, f.customers, f.tx, nil)
	ctx := context.Background()

	q, err := quotes.Create(ctx, userID, quoteRequest())
	require.NoError(t, err)
	inv, err := quotes.Convert(ctx, userID, q.ID)
	require.NoError(t, err)

	require.NoError(t, invoices.Delete(ctx, userID, inv.ID))
	stored := f.quotes.rows[q.ID]
	assert.Equal(t, entity.QuoteStatusAccepted, stored.Status)
	assert.Nil(t, stored.ConvertedInvoiceID)

	again, err := quotes.Convert(ctx, userID, q.ID)
	require.NoError(t, err)
	assert.NotEqual(t, inv.ID, again.ID)
	assert.True(t, strings.HasSuffix(again.InvoiceNumber, "-0001"), again.InvoiceNumber)
	assert.Len(t, f.invoices.rows, 1)
}

func TestInvoiceDelete_Inexistente(t *testing.T) {
	f := newFixture()
	uc := billing.NewInvoiceUseCase(f.invoices, f.customers, f.tx, nil)
	assert.ErrorIs(t, uc.Delete(context.Background(), userID, "no-existe"), domain.ErrNotFound)
}
