package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdnizduru/finans-proje/internal/application/billing"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func invoiceRequest(inclusive bool, items ...dto.DocumentItemRequest) dto.InvoiceRequest {
	return dto.InvoiceRequest{
		CustomerID:       customerID,
		IssueDate:        time.Date(2026, 10, 17, 15, 4, 0, 0, time.UTC),
		PricesIncludeTax: inclusive,
		Items:            items,
	}
}

func TestInvoiceCreate_TotalesYNumeracion(t *testing.T) {
	f := newFixture()
	uc := billing.NewInvoiceUseCase(f.invoices, f.customers, f.tx, nil)
	ctx := context.Background()

	inv, err := uc.Create(ctx, userID, invoiceRequest(false,
		dto.DocumentItemRequest{Description: "Otel", Quantity: d("2"), UnitPrice: d("100"), TaxRate: d("20")},
		dto.DocumentItemRequest{Description: "Transfer", Quantity: d("1"), UnitPrice: d("50"), TaxRate: d("10")},
	))
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0001", inv.InvoiceNumber)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, "TRY", inv.Currency)
	assert.True(t, d("250").Equal(inv.Subtotal), inv.Subtotal.String())
	assert.True(t, d("45").Equal(inv.TaxAmount), inv.TaxAmount.String())
	assert.True(t, d("295").Equal(inv.TotalAmount), inv.TotalAmount.String())
	assert.True(t, inv.TotalAmount.Equal(inv.Subtotal.Add(inv.TaxAmount)))
	assert.NotEmpty(t, inv.PublicToken)
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), inv.IssueDate)
	require.Len(t, inv.Items, 2)
	assert.True(t, d("240").Equal(inv.Items[0].LineTotal))
	assert.Len(t, f.invoices.items[inv.ID], 2)

	second, err := uc.Create(ctx, userID, invoiceRequest(false,
		dto.DocumentItemRequest{Description: "Vize", Quantity: d("1"), UnitPrice: d("10"), TaxRate: d("0")},
	))
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0002", second.InvoiceNumber)
}

func TestInvoiceCreate_PreciosConImpuesto(t *testing.T) {
	f := newFixture()
	uc := billing.NewInvoiceUseCase(f.invoices, f.customers, f.tx, nil)

	inv, err := uc.Create(context.Background(), userID, invoiceRequest(true,
		dto.DocumentItemRequest{Description: "Tur", Quantity: d("1"), UnitPrice: d("120"), TaxRate: d("20")},
	))
	require.NoError(t, err)
	assert.True(t, d("100").Equal(inv.Subtotal), inv.Subtotal.String())
	assert.True(t, d("20").Equal(inv.TaxAmount), inv.TaxAmount.String())
	assert.True(t, d("120").Equal(inv.TotalAmount), inv.TotalAmount.String())
}

func TestInvoiceCreate_Invalidos(t *testing.T) {
	f := newFixture()
	uc := billing.NewInvoiceUseCase(f.invoices, f.customers, f.tx, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, userID, invoiceRequest(false))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.Create(ctx, userID, invoiceRequest(false,
		dto.DocumentItemRequest{Description: "x", Quantity: d("0"), UnitPrice: d("10"), TaxRate: d("20")}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.Create(ctx, userID, invoiceRequest(false,
		dto.DocumentItemRequest{Description: "x", Quantity: d("1"), UnitPrice: d("10"), TaxRate: d("120")}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tasa > 100")

	req := invoiceRequest(false, dto.DocumentItemRequest{Description: "x", Quantity: d("1"), UnitPrice: d("10")})
	req.CustomerID = "33333333-3333-3333-3333-333333333333"
	_, err = uc.Create(ctx, userID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cliente de otro usuario o inexistente")

	req = invoiceRequest(false, dto.DocumentItemRequest{Description: "x", Quantity: d("1"), UnitPrice: d("10")})
	req.Status = "archived"
	_, err = uc.Create(ctx, userID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.invoices.rows)
}

func TestInvoiceUpdate_ReemplazaLineas(t *testing.T) {
	f := newFixture()
	uc := billing.NewInvoiceUseCase(f.invoices, f.customers, f.tx, nil)
	ctx := context.Background()

	inv, err := uc.Create(ctx, userID, invoiceRequest(false,
		dto.DocumentItemRequest{Description: "a", Quantity: d("1"), UnitPrice: d("10"), TaxRate: d("20")},
		dto.DocumentItemRequest{Description: "b", Quantity: d("1"), UnitPrice: d("10"), TaxRate: d("20")},
	))
	require.NoError(t, err)

	req := invoiceRequest(false, dto.DocumentItemRequest{Description: "c", Quantity: d("3"), UnitPrice: d("10"), TaxRate: d("0")})
	upd, err := uc.Update(ctx, userID, inv.ID, req)
	require.NoError(t, err)
	assert.Equal(t, inv.InvoiceNumber, upd.InvoiceNumber, "el número se conserva")
	assert.Equal(t, entity.InvoiceStatusDraft, upd.Status, "estado vacío conserva el actual")
	assert.True(t, d("30").Equal(upd.TotalAmount))
	require.Len(t, f.invoices.items[inv.ID], 1)
	assert.Equal(t, "c", f.invoices.items[inv.ID][0].Description)

	_, err = uc.Update(ctx, userID, "no-existe", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceStatusYListado(t *testing.T) {
	f := newFixture()
	uc := billing.NewInvoiceUseCase(f.invoices, f.customers, f.tx, nil)
	ctx := context.Background()
	inv, err := uc.Create(ctx, userID, invoiceRequest(false,
		dto.DocumentItemRequest{Description: "a", Quantity: d("1"), UnitPrice: d("10")}))
	require.NoError(t, err)

	assert.ErrorIs(t, uc.UpdateStatus(ctx, userID, inv.ID, "converted"), domain.ErrInvalidInput)
	require.NoError(t, uc.UpdateStatus(ctx, userID, inv.ID, entity.InvoiceStatusSent))

	list, err := uc.List(ctx, userID, repository.DocumentFilter{Status: entity.InvoiceStatusSent, Limit: 20})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Page.Total)
	assert.Empty(t, list.Items[0].Items, "el listado no trae líneas")

	got, err := uc.Get(ctx, userID, inv.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	require.NoError(t, uc.Delete(ctx, userID, inv.ID))
	got, err = uc.Get(ctx, userID, inv.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPreviewLines(t *testing.T) {
	res, err := billing.PreviewLines(dto.LinesPreviewRequest{
		Items: []dto.DocumentItemRequest{
			{Description: "a", Quantity: d("3"), UnitPrice: d("19.99"), TaxRate: d("18")},
		},
	})
	require.NoError(t, err)
	assert.True(t, d("59.97").Equal(res.Subtotal), res.Subtotal.String())
	assert.True(t, d("10.79").Equal(res.Tax), res.Tax.String())
	assert.True(t, d("70.76").Equal(res.Total), res.Total.String())
	require.Len(t, res.Lines, 1)

	empty, err := billing.PreviewLines(dto.LinesPreviewRequest{})
	require.NoError(t, err)
	assert.True(t, empty.Total.IsZero())
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "QUO-2026-0012", billing.FormatNumber(billing.QuotePrefix, 2026, 12))
	assert.Equal(t, "INV-2027-10000", billing.FormatNumber(billing.InvoicePrefix, 2027, 10000))
}

func TestInvoiceCreate_NumeracionTrasBorrado(t *testing.T) {
	f := newFixture()
	uc := billing.NewInvoiceUseCase(f.invoices, f.customers, f.tx, nil)
	ctx := context.Background()
	line := dto.DocumentItemRequest{Description: "Bilet", Quantity: d("1"), UnitPrice: d("100"), TaxRate: d("20")}

	first, err := uc.Create(ctx, userID, invoiceRequest(false, line))
	require.NoError(t, err)
	second, err := uc.Create(ctx, userID, invoiceRequest(false, line))
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0002", second.InvoiceNumber)

	require.NoError(t, uc.Delete(ctx, userID, first.ID))

	for _, want := range []string{"INV-2026-0003", "INV-2026-0004"} {
		inv, err := uc.Create(ctx, userID, invoiceRequest(false, line))
		require.NoError(t, err)
		assert.Equal(t, want, inv.InvoiceNumber)
	}
}

func TestInvoiceCreate_NumeroManualNoAfectaSecuencia(t *testing.T) {
	f := newFixture()
	uc := billing.NewInvoiceUseCase(f.invoices, f.customers, f.tx, nil)
	ctx := context.Background()
	line := dto.DocumentItemRequest{Description: "Vize", Quantity: d("1"), UnitPrice: d("50"), TaxRate: d("0")}

	manual := invoiceRequest(false, line)
	manual.InvoiceNumber = "MAVI-77"
	_, err := uc.Create(ctx, userID, manual)
	require.NoError(t, err)

	inv, err := uc.Create(ctx, userID, invoiceRequest(false, line))
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0001", inv.InvoiceNumber)
}
