// Package travel casos de uso de billetes aéreos, reservas de hotel y precarga de PNR.
package travel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gkdnizduru/finans-proje/internal/application/billing"
	"github.com/gkdnizduru/finans-proje/internal/application/cached"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/application/ports"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

const defaultCurrency = "TRY"

// TicketUseCase billetes con pasajeros y tramos, y su facturación.
type TicketUseCase struct {
	tickets   repository.TicketRepository
	customers repository.CustomerRepository
	tx        ports.TxRunner
	cache     *cached.Reader
	now       func() time.Time
}

// NewTicketUseCase construye el caso de uso.
func NewTicketUseCase(
	tickets repository.TicketRepository,
	customers repository.CustomerRepository,
	tx ports.TxRunner,
	cache *cached.Reader,
) *TicketUseCase {
	return &TicketUseCase{tickets: tickets, customers: customers, tx: tx, cache: cache, now: time.Now}
}

// Create guarda cabecera, pasajeros y tramos en una misma transacción.
func (uc *TicketUseCase) Create(ctx context.Context, userID string, in dto.TicketRequest) (*dto.TicketResponse, error) {
	if err := checkTicket(in); err != nil {
		return nil, err
	}
	if err := ensureCustomer(ctx, uc.customers, userID, in.CustomerID); err != nil {
		return nil, err
	}
	now := uc.now()
	t := &entity.Ticket{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyTicket(t, in)
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		return r.Tickets.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Tickets, cached.Dashboard)
	return toTicketResponse(t), nil
}

// GetByID billete con pasajeros y tramos; nil si no existe.
func (uc *TicketUseCase) GetByID(ctx context.Context, userID, id string) (*dto.TicketResponse, error) {
	t, err := uc.tickets.GetByID(ctx, userID, id)
	if err != nil || t == nil {
		return nil, err
	}
	return toTicketResponse(t), nil
}

func (uc *TicketUseCase) List(ctx context.Context, userID string, f repository.TicketFilter) (*dto.TicketListResponse, error) {
	key := cached.Key(userID, cached.Tickets, f.CustomerID, f.Status, f.Search, f.Limit, f.Offset)
	return cached.Load(ctx, uc.cache, key, func(ctx context.Context) (*dto.TicketListResponse, error) {
		list, total, err := uc.tickets.List(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		items := make([]dto.TicketResponse, 0, len(list))
		for _, t := range list {
			items = append(items, *toTicketResponse(t))
		}
		return &dto.TicketListResponse{
			Items: items,
			Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
		}, nil
	})
}

// Update reemplaza cabecera, pasajeros y tramos. El vínculo con la factura se conserva.
func (uc *TicketUseCase) Update(ctx context.Context, userID, id string, in dto.TicketRequest) (*dto.TicketResponse, error) {
	if err := checkTicket(in); err != nil {
		return nil, err
	}
	t, err := uc.tickets.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if in.CustomerID != t.CustomerID {
		if err := ensureCustomer(ctx, uc.customers, userID, in.CustomerID); err != nil {
			return nil, err
		}
	}
	applyTicket(t, in)
	t.UpdatedAt = uc.now()
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Tickets.Update(ctx, t); err != nil {
			return err
		}
		return r.Tickets.ReplaceChildren(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Tickets, cached.Dashboard)
	return toTicketResponse(t), nil
}

func (uc *TicketUseCase) Delete(ctx context.Context, userID, id string) error {
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		return r.Tickets.Delete(ctx, userID, id)
	})
	if err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, userID, cached.Tickets, cached.Dashboard)
	return nil
}

// ToInvoice genera una factura borrador con una línea por pasajero. El precio unitario es
// el precio de venta dividido entre los pasajeros; por defecto el precio incluye impuesto.
// Un billete ya facturado devuelve domain.ErrConflict.
func (uc *TicketUseCase) ToInvoice(ctx context.Context, userID, id string, in dto.TicketInvoiceRequest) (*dto.InvoiceResponse, error) {
	t, err := uc.tickets.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.InvoiceID != nil {
		return nil, fmt.Errorf("%w: el billete ya tiene factura", domain.ErrConflict)
	}
	if t.Status == entity.TicketStatusCancelled || t.Status == entity.TicketStatusRefunded {
		return nil, fmt.Errorf("%w: billete %s", domain.ErrConflict, t.Status)
	}
	if len(t.Passengers) == 0 {
		return nil, fmt.Errorf("%w: el billete no tiene pasajeros", domain.ErrInvalidInput)
	}

	inclusive := true
	if in.PricesIncludeTax != nil {
		inclusive = *in.PricesIncludeTax
	}
	doc, err := billing.PriceItems(ticketLines(t, in.TaxRate), inclusive)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	ticketID := t.ID
	inv := &entity.Invoice{
		ID:               uuid.New().String(),
		UserID:           userID,
		CustomerID:       t.CustomerID,
		IssueDate:        truncateDay(now),
		DueDate:          in.DueDate,
		Status:           entity.InvoiceStatusDraft,
		Currency:         t.Currency,
		PricesIncludeTax: inclusive,
		Notes:            ticketNote(t),
		PublicToken:      billing.NewPublicToken(),
		TicketID:         &ticketID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	var items []*entity.InvoiceItem
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		var err error
		if items, err = billing.CreateInvoice(ctx, r.Invoices, inv, doc); err != nil {
			return err
		}
		return r.Tickets.SetInvoice(ctx, userID, t.ID, inv.ID)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("ticket_id", t.ID).Str("invoice", inv.InvoiceNumber).Msg("billete facturado")
	uc.cache.Invalidate(ctx, userID, cached.Tickets, cached.Invoices, cached.Dashboard)
	return billing.ToInvoiceResponse(inv, items), nil
}

// ticketLines una línea por pasajero con el precio de venta repartido. El reparto trunca a
// centavos y el resto va a la última línea: la suma es exactamente SellPrice.
func ticketLines(t *entity.Ticket, taxRate decimal.Decimal) []dto.DocumentItemRequest {
	n := int64(len(t.Passengers))
	unit := t.SellPrice.DivRound(decimal.NewFromInt(n), 8).Truncate(2)
	last := t.SellPrice.Sub(unit.Mul(decimal.NewFromInt(n - 1)))
	route := ticketRoute(t)
	lines := make([]dto.DocumentItemRequest, 0, len(t.Passengers))
	for i, p := range t.Passengers {
		price := unit
		if i == len(t.Passengers)-1 {
			price = last
		}
		desc := "Uçak bileti - " + p.FullName
		if route != "" {
			desc += " (" + route + ")"
		}
		if t.PNR != "" {
			desc += " PNR " + t.PNR
		}
		lines = append(lines, dto.DocumentItemRequest{
			Description: desc,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   price,
			TaxRate:     taxRate,
		})
	}
	return lines
}

// ticketRoute IST-ESB-AYT a partir de los tramos.
func ticketRoute(t *entity.Ticket) string {
	if len(t.Segments) == 0 {
		return ""
	}
	parts := []string{t.Segments[0].Origin}
	for _, s := range t.Segments {
		parts = append(parts, s.Destination)
	}
	return strings.Join(parts, "-")
}

func ticketNote(t *entity.Ticket) string {
	if t.TicketNumber == "" {
		return ""
	}
	return "Bilet no: " + t.TicketNumber
}

func checkTicket(in dto.TicketRequest) error {
	if len(in.Passengers) == 0 {
		return fmt.Errorf("%w: al menos un pasajero", domain.ErrInvalidInput)
	}
	if in.SellPrice.IsNegative() || in.PurchasePrice.IsNegative() {
		return fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	switch in.Status {
	case "", entity.TicketStatusReserved, entity.TicketStatusIssued, entity.TicketStatusCancelled, entity.TicketStatusRefunded:
		return nil
	}
	return fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
}

func applyTicket(t *entity.Ticket, in dto.TicketRequest) {
	t.CustomerID = in.CustomerID
	t.AirlineID = in.AirlineID
	t.PNR = strings.ToUpper(strings.TrimSpace(in.PNR))
	t.TicketNumber = strings.TrimSpace(in.TicketNumber)
	t.Status = in.Status
	if t.Status == "" {
		t.Status = entity.TicketStatusIssued
	}
	t.IssueDate = truncateDay(in.IssueDate)
	t.Currency = currencyOr(in.Currency)
	t.PurchasePrice = in.PurchasePrice
	t.SellPrice = in.SellPrice
	t.Notes = in.Notes

	t.Passengers = make([]entity.TicketPassenger, 0, len(in.Passengers))
	for i, p := range in.Passengers {
		typ := p.PassengerType
		if typ == "" {
			typ = entity.PassengerAdult
		}
		t.Passengers = append(t.Passengers, entity.TicketPassenger{
			ID:            uuid.New().String(),
			TicketID:      t.ID,
			FullName:      strings.TrimSpace(p.FullName),
			PassengerType: typ,
			TicketNumber:  strings.TrimSpace(p.TicketNumber),
			Position:      i + 1,
		})
	}
	t.Segments = make([]entity.TicketSegment, 0, len(in.Segments))
	for i, s := range in.Segments {
		t.Segments = append(t.Segments, entity.TicketSegment{
			ID:           uuid.New().String(),
			TicketID:     t.ID,
			FlightNumber: strings.ToUpper(strings.TrimSpace(s.FlightNumber)),
			Origin:       strings.ToUpper(s.Origin),
			Destination:  strings.ToUpper(s.Destination),
			DepartureAt:  s.DepartureAt,
			ArrivalAt:    s.ArrivalAt,
			Position:     i + 1,
		})
	}
}

func toTicketResponse(t *entity.Ticket) *dto.TicketResponse {
	out := &dto.TicketResponse{
		ID:            t.ID,
		CustomerID:    t.CustomerID,
		AirlineID:     t.AirlineID,
		PNR:           t.PNR,
		TicketNumber:  t.TicketNumber,
		Status:        t.Status,
		IssueDate:     t.IssueDate,
		Currency:      t.Currency,
		PurchasePrice: t.PurchasePrice,
		SellPrice:     t.SellPrice,
		Profit:        t.Profit(),
		InvoiceID:     t.InvoiceID,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	for _, p := range t.Passengers {
		out.Passengers = append(out.Passengers, dto.PassengerDTO{
			FullName:      p.FullName,
			PassengerType: p.PassengerType,
			TicketNumber:  p.TicketNumber,
		})
	}
	for _, s := range t.Segments {
		out.Segments = append(out.Segments, dto.SegmentDTO{
			FlightNumber: s.FlightNumber,
			Origin:       s.Origin,
			Destination:  s.Destination,
			DepartureAt:  s.DepartureAt,
			ArrivalAt:    s.ArrivalAt,
		})
	}
	return out
}

func ensureCustomer(ctx context.Context, customers repository.CustomerRepository, userID, customerID string) error {
	c, err := customers.GetByID(ctx, userID, customerID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: cliente inexistente", domain.ErrInvalidInput)
	}
	return nil
}

func currencyOr(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return defaultCurrency
	}
	return c
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
