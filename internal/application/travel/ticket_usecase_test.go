package travel_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/application/travel"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

type ticketFixture struct {
	tickets  *memTickets
	invoices *memInvoices
	uc       *travel.TicketUseCase
}

func newTicketFixture() *ticketFixture {
	f := &ticketFixture{
		tickets:  &memTickets{rows: map[string]*entity.Ticket{}},
		invoices: &memInvoices{rows: map[string]*entity.Invoice{}, items: map[string][]*entity.InvoiceItem{}},
	}
	f.uc = travel.NewTicketUseCase(f.tickets, memCustomers{}, &memTx{tickets: f.tickets, invoices: f.invoices}, nil)
	return f
}

func ticketRequest(passengers ...string) dto.TicketRequest {
	in := dto.TicketRequest{
		CustomerID:    customerID,
		PNR:           "abc123",
		TicketNumber:  "2351234567890",
		IssueDate:     time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
		PurchasePrice: d("2400"),
		SellPrice:     d("3000"),
		Segments: []dto.SegmentDTO{
			{FlightNumber: "tk2410", Origin: "ist", Destination: "esb", DepartureAt: time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)},
			{FlightNumber: "TK2415", Origin: "ESB", Destination: "IST", DepartureAt: time.Date(2026, 6, 5, 19, 0, 0, 0, time.UTC)},
		},
	}
	for _, p := range passengers {
		in.Passengers = append(in.Passengers, dto.PassengerDTO{FullName: p})
	}
	return in
}

func TestTicketCreate(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	out, err := f.uc.Create(ctx, userID, ticketRequest("Ayşe Kaya", "Mehmet Kaya"))
	require.NoError(t, err)
	assert.Equal(t, "ABC123", out.PNR)
	assert.Equal(t, entity.TicketStatusIssued, out.Status)
	assert.Equal(t, "TRY", out.Currency)
	assert.True(t, d("600").Equal(out.Profit))
	require.Len(t, out.Passengers, 2)
	assert.Equal(t, entity.PassengerAdult, out.Passengers[0].PassengerType)
	require.Len(t, out.Segments, 2)
	assert.Equal(t, "TK2410", out.Segments[0].FlightNumber)
	assert.Equal(t, "IST", out.Segments[0].Origin)

	stored := f.tickets.rows[out.ID]
	require.NotNil(t, stored)
	assert.Len(t, stored.Passengers, 2)
}

func TestTicketCreate_Invalido(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, userID, ticketRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := ticketRequest("Ayşe Kaya")
	in.SellPrice = d("-1")
	_, err = f.uc.Create(ctx, userID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = ticketRequest("Ayşe Kaya")
	in.CustomerID = "33333333-3333-3333-3333-333333333333"
	_, err = f.uc.Create(ctx, userID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.tickets.rows)
}

func TestTicketUpdate_ReemplazaPasajeros(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	out, err := f.uc.Create(ctx, userID, ticketRequest("Ayşe Kaya", "Mehmet Kaya"))
	require.NoError(t, err)

	upd, err := f.uc.Update(ctx, userID, out.ID, ticketRequest("Zeynep Kaya"))
	require.NoError(t, err)
	assert.Len(t, upd.Passengers, 1)
	assert.Len(t, f.tickets.rows[out.ID].Passengers, 1)
	assert.Equal(t, "Zeynep Kaya", f.tickets.rows[out.ID].Passengers[0].FullName)

	_, err = f.uc.Update(ctx, userID, "no-existe", ticketRequest("X"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTicketToInvoice(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	tk, err := f.uc.Create(ctx, userID, ticketRequest("Ayşe Kaya", "Mehmet Kaya", "Ali Kaya"))
	require.NoError(t, err)

	inv, err := f.uc.ToInvoice(ctx, userID, tk.ID, dto.TicketInvoiceRequest{TaxRate: d("20")})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.True(t, inv.PricesIncludeTax)
	require.Len(t, inv.Items, 3)
	assert.True(t, d("1000").Equal(inv.Items[0].UnitPrice))
	assert.Contains(t, inv.Items[0].Description, "Ayşe Kaya")
	assert.Contains(t, inv.Items[0].Description, "IST-ESB-IST")
	// 3000 con IVA incluido al 20%: 2500 + 500
	assert.True(t, d("3000").Equal(inv.TotalAmount))
	assert.True(t, d("2500").Equal(inv.Subtotal))
	assert.True(t, d("500").Equal(inv.TaxAmount))
	assert.Regexp(t, `^INV-\d{4}-0001$`, inv.InvoiceNumber)

	stored := f.invoices.rows[inv.ID]
	require.NotNil(t, stored)
	require.NotNil(t, stored.TicketID)
	assert.Equal(t, tk.ID, *stored.TicketID)
	require.NotNil(t, f.tickets.rows[tk.ID].InvoiceID)
	assert.Equal(t, inv.ID, *f.tickets.rows[tk.ID].InvoiceID)

	_, err = f.uc.ToInvoice(ctx, userID, tk.ID, dto.TicketInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, f.invoices.rows, 1)
}

func TestTicketToInvoice_PrecioSinImpuesto(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	tk, err := f.uc.Create(ctx, userID, ticketRequest("Ayşe Kaya"))
	require.NoError(t, err)
	exclusive := false
	inv, err := f.uc.ToInvoice(ctx, userID, tk.ID, dto.TicketInvoiceRequest{TaxRate: d("10"), PricesIncludeTax: &exclusive})
	require.NoError(t, err)
	assert.True(t, d("3300").Equal(inv.TotalAmount))
}

func TestTicketToInvoice_RepartoConResto(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	in := ticketRequest("Ayşe Kaya", "Mehmet Kaya", "Ali Kaya")
	in.PurchasePrice = d("80")
	in.SellPrice = d("100")
	tk, err := f.uc.Create(ctx, userID, in)
	require.NoError(t, err)

	inv, err := f.uc.ToInvoice(ctx, userID, tk.ID, dto.TicketInvoiceRequest{TaxRate: d("20")})
	require.NoError(t, err)
	require.Len(t, inv.Items, 3)
	assert.True(t, d("33.33").Equal(inv.Items[0].UnitPrice), inv.Items[0].UnitPrice.String())
	assert.True(t, d("33.33").Equal(inv.Items[1].UnitPrice), inv.Items[1].UnitPrice.String())
	assert.True(t, d("33.34").Equal(inv.Items[2].UnitPrice), inv.Items[2].UnitPrice.String())

	sum := decimal.Zero
	for _, it := range inv.Items {
		sum = sum.Add(it.LineTotal)
	}
	assert.True(t, d("100").Equal(sum), sum.String())
	assert.True(t, d("100").Equal(inv.TotalAmount), inv.TotalAmount.String())
}

func TestTicketToInvoice_Cancelado(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	in := ticketRequest("Ayşe Kaya")
	in.Status = entity.TicketStatusCancelled
	tk, err := f.uc.Create(ctx, userID, in)
	require.NoError(t, err)
	_, err = f.uc.ToInvoice(ctx, userID, tk.ID, dto.TicketInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.ToInvoice(ctx, userID, "no-existe", dto.TicketInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTicketDelete(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()
	tk, err := f.uc.Create(ctx, userID, ticketRequest("Ayşe Kaya"))
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(ctx, userID, tk.ID))
	assert.ErrorIs(t, f.uc.Delete(ctx, userID, tk.ID), domain.ErrNotFound)
}
