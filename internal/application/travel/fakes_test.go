package travel_test

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gkdnizduru/finans-proje/internal/application/ports"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

const (
	userID     = "11111111-1111-1111-1111-111111111111"
	customerID = "22222222-2222-2222-2222-222222222222"
)

type memCustomers struct {
	repository.CustomerRepository
}

func (memCustomers) GetByID(_ context.Context, uid, id string) (*entity.Customer, error) {
	if uid != userID || id != customerID {
		return nil, nil
	}
	return &entity.Customer{ID: customerID, UserID: userID, Name: "Ayşe Kaya"}, nil
}

type memTickets struct {
	repository.TicketRepository
	rows map[string]*entity.Ticket
}

func (m *memTickets) Create(_ context.Context, t *entity.Ticket) error {
	cp := *t
	m.rows[t.ID] = &cp
	return nil
}

func (m *memTickets) Update(_ context.Context, t *entity.Ticket) error {
	old := m.rows[t.ID]
	if old == nil {
		return domain.ErrNotFound
	}
	cp := *t
	cp.InvoiceID = old.InvoiceID
	cp.Passengers, cp.Segments = old.Passengers, old.Segments
	m.rows[t.ID] = &cp
	return nil
}

func (m *memTickets) ReplaceChildren(_ context.Context, t *entity.Ticket) error {
	m.rows[t.ID].Passengers = t.Passengers
	m.rows[t.ID].Segments = t.Segments
	return nil
}

func (m *memTickets) SetInvoice(_ context.Context, uid, id, invoiceID string) error {
	t := m.rows[id]
	if t == nil || t.UserID != uid || t.InvoiceID != nil {
		return domain.ErrConflict
	}
	t.InvoiceID = &invoiceID
	return nil
}

func (m *memTickets) GetByID(_ context.Context, uid, id string) (*entity.Ticket, error) {
	t := m.rows[id]
	if t == nil || t.UserID != uid {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memTickets) Delete(_ context.Context, uid, id string) error {
	t := m.rows[id]
	if t == nil || t.UserID != uid {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memInvoices struct {
	repository.InvoiceRepository
	rows  map[string]*entity.Invoice
	items map[string][]*entity.InvoiceItem
}

func (m *memInvoices) Create(_ context.Context, i *entity.Invoice) error {
	cp := *i
	m.rows[i.ID] = &cp
	return nil
}

func (m *memInvoices) CreateItem(_ context.Context, it *entity.InvoiceItem) error {
	m.items[it.InvoiceID] = append(m.items[it.InvoiceID], it)
	return nil
}

func (m *memInvoices) MaxSequence(_ context.Context, uid, prefix string, year int) (int, error) {
	n := 0
	for _, i := range m.rows {
		rest, ok := strings.CutPrefix(i.InvoiceNumber, fmt.Sprintf("%s-%d-", prefix, year))
		if !ok || i.UserID != uid {
			continue
		}
		if s, err := strconv.Atoi(rest); err == nil && s > n {
			n = s
		}
	}
	return n, nil
}

type memTx struct {
	tickets  *memTickets
	invoices *memInvoices
}

func (m *memTx) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	return fn(ports.TxRepos{Tickets: m.tickets, Invoices: m.invoices})
}

type memHotels struct {
	repository.HotelReservationRepository
	rows map[string]*entity.HotelReservation
}

func (m *memHotels) Create(_ context.Context, h *entity.HotelReservation) error {
	cp := *h
	m.rows[h.ID] = &cp
	return nil
}

func (m *memHotels) Update(_ context.Context, h *entity.HotelReservation) error {
	cp := *h
	m.rows[h.ID] = &cp
	return nil
}

func (m *memHotels) GetByID(_ context.Context, uid, id string) (*entity.HotelReservation, error) {
	h := m.rows[id]
	if h == nil || h.UserID != uid {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

type memAirlines struct {
	repository.AirlineRepository
	rows []*entity.Airline
}

func (m *memAirlines) List(_ context.Context, uid string) ([]*entity.Airline, error) {
	var out []*entity.Airline
	for _, a := range m.rows {
		if a.UserID == uid {
			out = append(out, a)
		}
	}
	return out, nil
}
