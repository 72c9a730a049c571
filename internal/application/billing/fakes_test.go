package billing_test

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gkdnizduru/finans-proje/internal/application/ports"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

type memInvoices struct {
	rows  map[string]*entity.Invoice
	items map[string][]*entity.InvoiceItem
}

func newMemInvoices() *memInvoices {
	return &memInvoices{rows: map[string]*entity.Invoice{}, items: map[string][]*entity.InvoiceItem{}}
}

func (m *memInvoices) Create(_ context.Context, i *entity.Invoice) error {
	for _, x := range m.rows {
		if x.UserID == i.UserID && x.InvoiceNumber == i.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *i
	m.rows[i.ID] = &cp
	return nil
}

func (m *memInvoices) CreateItem(_ context.Context, it *entity.InvoiceItem) error {
	m.items[it.InvoiceID] = append(m.items[it.InvoiceID], it)
	return nil
}

func (m *memInvoices) Update(_ context.Context, i *entity.Invoice) error {
	if _, ok := m.rows[i.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *i
	m.rows[i.ID] = &cp
	return nil
}

func (m *memInvoices) UpdateStatus(_ context.Context, userID, id, status string) error {
	i := m.rows[id]
	if i == nil || i.UserID != userID {
		return domain.ErrNotFound
	}
	i.Status = status
	return nil
}

func (m *memInvoices) GetByID(_ context.Context, userID, id string) (*entity.Invoice, error) {
	i := m.rows[id]
	if i == nil || i.UserID != userID {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (m *memInvoices) GetByPublicToken(_ context.Context, token string) (*entity.Invoice, error) {
	for _, i := range m.rows {
		if i.PublicToken == token {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memInvoices) GetItems(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	return m.items[invoiceID], nil
}

func (m *memInvoices) List(_ context.Context, userID string, f repository.DocumentFilter) ([]*entity.Invoice, int, error) {
	var out []*entity.Invoice
	for _, i := range m.rows {
		if i.UserID == userID && (f.Status == "" || i.Status == f.Status) {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].InvoiceNumber > out[b].InvoiceNumber })
	return out, len(out), nil
}

func (m *memInvoices) MaxSequence(_ context.Context, userID, prefix string, year int) (int, error) {
	n := 0
	for _, i := range m.rows {
		if s := sequenceOf(i.InvoiceNumber, prefix, year); i.UserID == userID && s > n {
			n = s
		}
	}
	return n, nil
}

func (m *memInvoices) DeleteItems(_ context.Context, invoiceID string) error {
	delete(m.items, invoiceID)
	return nil
}

func (m *memInvoices) Delete(_ context.Context, userID, id string) error {
	i := m.rows[id]
	if i == nil || i.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	delete(m.items, id)
	return nil
}

func (m *memInvoices) DeleteByCustomer(_ context.Context, userID, customerID string) error {
	for id, i := range m.rows {
		if i.UserID == userID && i.CustomerID == customerID {
			delete(m.rows, id)
			delete(m.items, id)
		}
	}
	return nil
}

type memQuotes struct {
	rows  map[string]*entity.Quote
	items map[string][]*entity.QuoteItem
}

func newMemQuotes() *memQuotes {
	return &memQuotes{rows: map[string]*entity.Quote{}, items: map[string][]*entity.QuoteItem{}}
}

func (m *memQuotes) Create(_ context.Context, q *entity.Quote) error {
	for _, x := range m.rows {
		if x.UserID == q.UserID && x.QuoteNumber == q.QuoteNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *q
	m.rows[q.ID] = &cp
	return nil
}

func (m *memQuotes) CreateItem(_ context.Context, it *entity.QuoteItem) error {
	m.items[it.QuoteID] = append(m.items[it.QuoteID], it)
	return nil
}

func (m *memQuotes) Update(_ context.Context, q *entity.Quote) error {
	cp := *q
	m.rows[q.ID] = &cp
	return nil
}

func (m *memQuotes) UpdateStatus(_ context.Context, userID, id, status string) error {
	q := m.rows[id]
	if q == nil || q.UserID != userID {
		return domain.ErrNotFound
	}
	q.Status = status
	return nil
}

func (m *memQuotes) MarkConverted(_ context.Context, userID, id, invoiceID string) error {
	q := m.rows[id]
	if q == nil || q.UserID != userID || q.ConvertedInvoiceID != nil {
		return domain.ErrConflict
	}
	q.Status = entity.QuoteStatusConverted
	q.ConvertedInvoiceID = &invoiceID
	return nil
}

func (m *memQuotes) ReleaseConversion(_ context.Context, userID, invoiceID string) error {
	for _, q := range m.rows {
		if q.UserID == userID && q.ConvertedInvoiceID != nil && *q.ConvertedInvoiceID == invoiceID {
			q.Status = entity.QuoteStatusAccepted
			q.ConvertedInvoiceID = nil
		}
	}
	return nil
}

func (m *memQuotes) GetByID(_ context.Context, userID, id string) (*entity.Quote, error) {
	q := m.rows[id]
	if q == nil || q.UserID != userID {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (m *memQuotes) GetByPublicToken(_ context.Context, token string) (*entity.Quote, error) {
	for _, q := range m.rows {
		if q.PublicToken == token {
			cp := *q
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memQuotes) UpdateStatusByToken(_ context.Context, token, status string) error {
	for _, q := range m.rows {
		if q.PublicToken == token {
			if !q.CanRespond() {
				return domain.ErrConflict
			}
			q.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memQuotes) GetItems(_ context.Context, quoteID string) ([]*entity.QuoteItem, error) {
	return m.items[quoteID], nil
}

func (m *memQuotes) List(_ context.Context, userID string, _ repository.DocumentFilter) ([]*entity.Quote, int, error) {
	var out []*entity.Quote
	for _, q := range m.rows {
		if q.UserID == userID {
			out = append(out, q)
		}
	}
	return out, len(out), nil
}

func (m *memQuotes) MaxSequence(_ context.Context, userID, prefix string, year int) (int, error) {
	n := 0
	for _, q := range m.rows {
		if s := sequenceOf(q.QuoteNumber, prefix, year); q.UserID == userID && s > n {
			n = s
		}
	}
	return n, nil
}

// sequenceOf extrae NNNN de <prefijo>-<año>-NNNN; 0 si el número tiene otro formato.
func sequenceOf(number, prefix string, year int) int {
	rest, ok := strings.CutPrefix(number, fmt.Sprintf("%s-%d-", prefix, year))
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0
	}
	return n
}

func (m *memQuotes) DeleteItems(_ context.Context, quoteID string) error {
	delete(m.items, quoteID)
	return nil
}

func (m *memQuotes) Delete(_ context.Context, _, id string) error {
	delete(m.rows, id)
	delete(m.items, id)
	return nil
}

func (m *memQuotes) DeleteByCustomer(context.Context, string, string) error { return nil }

type memCustomers struct {
	repository.CustomerRepository
	rows map[string]*entity.Customer
}

func (m *memCustomers) GetByID(_ context.Context, userID, id string) (*entity.Customer, error) {
	c := m.rows[id]
	if c == nil || c.UserID != userID {
		return nil, nil
	}
	return c, nil
}

type memCompany struct {
	profile *entity.CompanyProfile
}

func (m *memCompany) Get(_ context.Context, userID string) (*entity.CompanyProfile, error) {
	if m.profile == nil || m.profile.UserID != userID {
		return nil, nil
	}
	return m.profile, nil
}

func (m *memCompany) Upsert(_ context.Context, p *entity.CompanyProfile) error {
	m.profile = p
	return nil
}

// memTx pasa los mismos repositorios en memoria al callback.
type memTx struct {
	invoices *memInvoices
	quotes   *memQuotes
}

func (m *memTx) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	return fn(ports.TxRepos{Invoices: m.invoices, Quotes: m.quotes})
}

const (
	userID     = "11111111-1111-1111-1111-111111111111"
	customerID = "22222222-2222-2222-2222-222222222222"
)

type fixture struct {
	invoices  *memInvoices
	quotes    *memQuotes
	customers *memCustomers
	company   *memCompany
	tx        *memTx
}

func newFixture() *fixture {
	f := &fixture{
		invoices: newMemInvoices(),
		quotes:   newMemQuotes(),
		customers: &memCustomers{rows: map[string]*entity.Customer{
			customerID: {ID: customerID, UserID: userID, Name: "Ayşe Kaya", TaxNumber: "12345678901"},
		}},
		company: &memCompany{profile: &entity.CompanyProfile{UserID: userID, Name: "Mavi Tur"}},
	}
	f.tx = &memTx{invoices: f.invoices, quotes: f.quotes}
	return f
}
