package usecase_test

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"

	"github.com/gkdnizduru/finans-proje/internal/application/ports"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

// memCustomers repositorio de clientes en memoria. deleteErr simula la FK de la base.
type memCustomers struct {
	repository.CustomerRepository
	rows      map[string]*entity.Customer
	deleteErr error
	log       *[]string
}

func newMemCustomers(log *[]string) *memCustomers {
	return &memCustomers{rows: map[string]*entity.Customer{}, log: log}
}

func (m *memCustomers) Create(_ context.Context, c *entity.Customer) error {
	m.rows[c.ID] = c
	return nil
}

func (m *memCustomers) GetByID(_ context.Context, userID, id string) (*entity.Customer, error) {
	c := m.rows[id]
	if c == nil || c.UserID != userID {
		return nil, nil
	}
	return c, nil
}

func (m *memCustomers) Update(_ context.Context, c *entity.Customer) error {
	if _, ok := m.rows[c.ID]; !ok {
		return domain.ErrNotFound
	}
	m.rows[c.ID] = c
	return nil
}

func (m *memCustomers) Delete(_ context.Context, userID, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	if m.log != nil {
		*m.log = append(*m.log, "customer")
	}
	return nil
}

type memAttachments struct {
	repository.AttachmentRepository
	rows      map[string]*entity.Attachment
	createErr error
}

func newMemAttachments() *memAttachments {
	return &memAttachments{rows: map[string]*entity.Attachment{}}
}

func (m *memAttachments) Create(_ context.Context, a *entity.Attachment) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.rows[a.ID] = a
	return nil
}

func (m *memAttachments) GetByID(_ context.Context, userID, id string) (*entity.Attachment, error) {
	a := m.rows[id]
	if a == nil || a.UserID != userID {
		return nil, nil
	}
	return a, nil
}

func (m *memAttachments) ListByCustomer(_ context.Context, userID, customerID string) ([]*entity.Attachment, error) {
	var out []*entity.Attachment
	for _, a := range m.rows {
		if a.UserID == userID && a.CustomerID == customerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memAttachments) Delete(_ context.Context, _, id string) error {
	delete(m.rows, id)
	return nil
}

// memStorage almacenamiento de objetos en memoria.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newMemStorage() *memStorage { return &memStorage{objects: map[string][]byte{}} }

func (s *memStorage) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	s.mu.Lock()
	s.objects[key] = buf.Bytes()
	s.mu.Unlock()
	return nil
}

func (s *memStorage) PresignedGetURL(_ context.Context, key string) (string, error) {
	return "https://files.test/" + key, nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	s.mu.Unlock()
	return nil
}

// stepRepo registra las llamadas de borrado en cascada en orden.
type stepRepo struct {
	name string
	log  *[]string
}

func (s stepRepo) record(context.Context, string, string) error {
	*s.log = append(*s.log, s.name)
	return nil
}

type quoteSteps struct {
	repository.QuoteRepository
	stepRepo
}

func (q quoteSteps) DeleteByCustomer(ctx context.Context, u, c string) error { return q.record(ctx, u, c) }

type dealSteps struct {
	repository.DealRepository
	stepRepo
}

func (d dealSteps) DeleteByCustomer(ctx context.Context, u, c string) error { return d.record(ctx, u, c) }

type activitySteps struct {
	repository.ActivityRepository
	stepRepo
}

func (a activitySteps) DeleteByCustomer(ctx context.Context, u, c string) error {
	return a.record(ctx, u, c)
}

type noteSteps struct {
	repository.NoteRepository
	stepRepo
}

func (n noteSteps) DeleteByCustomer(ctx context.Context, u, c string) error { return n.record(ctx, u, c) }

type attachmentSteps struct {
	repository.AttachmentRepository
	stepRepo
}

func (a attachmentSteps) DeleteByCustomer(ctx context.Context, u, c string) error {
	return a.record(ctx, u, c)
}

type hotelSteps struct {
	repository.HotelReservationRepository
	stepRepo
}

func (h hotelSteps) DeleteByCustomer(ctx context.Context, u, c string) error { return h.record(ctx, u, c) }

type ticketSteps struct {
	repository.TicketRepository
	stepRepo
}

func (t ticketSteps) DeleteByCustomer(ctx context.Context, u, c string) error { return t.record(ctx, u, c) }

type transactionSteps struct {
	repository.TransactionRepository
	stepRepo
}

func (t transactionSteps) DetachCustomer(ctx context.Context, u, c string) error {
	return t.record(ctx, u, c)
}

type invoiceSteps struct {
	repository.InvoiceRepository
	stepRepo
}

func (i invoiceSteps) DeleteByCustomer(ctx context.Context, u, c string) error {
	return i.record(ctx, u, c)
}

// stepTx ejecuta fn con repositorios que registran el orden de la cascada.
type stepTx struct {
	customers *memCustomers
	log       *[]string
	runs      int
}

func (s *stepTx) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	s.runs++
	step := func(name string) stepRepo { return stepRepo{name: name, log: s.log} }
	return fn(ports.TxRepos{
		Customers:    s.customers,
		Quotes:       quoteSteps{stepRepo: step("quotes")},
		Deals:        dealSteps{stepRepo: step("deals")},
		Activities:   activitySteps{stepRepo: step("activities")},
		Notes:        noteSteps{stepRepo: step("notes")},
		Attachments:  attachmentSteps{stepRepo: step("attachments")},
		Hotels:       hotelSteps{stepRepo: step("hotels")},
		Tickets:      ticketSteps{stepRepo: step("tickets")},
		Transactions: transactionSteps{stepRepo: step("transactions")},
		Invoices:     invoiceSteps{stepRepo: step("invoices")},
	})
}

type memCategories struct {
	repository.CategoryRepository
	rows map[string]*entity.Category
}

func (m *memCategories) GetByID(_ context.Context, userID, id string) (*entity.Category, error) {
	c := m.rows[id]
	if c == nil || c.UserID != userID {
		return nil, nil
	}
	return c, nil
}

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	for _, x := range m.rows {
		if x.UserID == c.UserID && x.Type == c.Type && x.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	m.rows[c.ID] = c
	return nil
}

func (m *memCategories) Update(_ context.Context, c *entity.Category) error {
	m.rows[c.ID] = c
	return nil
}

func (m *memCategories) List(_ context.Context, userID, typ string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range m.rows {
		if c.UserID == userID && (typ == "" || c.Type == typ) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCategories) Delete(_ context.Context, userID, id string) error {
	c := m.rows[id]
	if c == nil || c.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memAirlines struct {
	rows map[string]*entity.Airline
}

func (m *memAirlines) Create(_ context.Context, a *entity.Airline) error {
	m.rows[a.ID] = a
	return nil
}

func (m *memAirlines) GetByID(_ context.Context, userID, id string) (*entity.Airline, error) {
	a := m.rows[id]
	if a == nil || a.UserID != userID {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *memAirlines) Update(_ context.Context, a *entity.Airline) error {
	m.rows[a.ID] = a
	return nil
}

func (m *memAirlines) List(_ context.Context, userID string) ([]*entity.Airline, error) {
	var out []*entity.Airline
	for _, a := range m.rows {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memAirlines) Delete(_ context.Context, userID, id string) error {
	a := m.rows[id]
	if a == nil || a.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memDeals struct {
	repository.DealRepository
	rows    map[string]*entity.Deal
	updates int
}

func (m *memDeals) Create(_ context.Context, d *entity.Deal) error {
	m.rows[d.ID] = d
	return nil
}

func (m *memDeals) GetByID(_ context.Context, userID, id string) (*entity.Deal, error) {
	d := m.rows[id]
	if d == nil || d.UserID != userID {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (m *memDeals) Update(_ context.Context, d *entity.Deal) error {
	m.updates++
	m.rows[d.ID] = d
	return nil
}

type memCompany struct {
	profile *entity.CompanyProfile
	upserts int
}

func (m *memCompany) Get(_ context.Context, userID string) (*entity.CompanyProfile, error) {
	if m.profile == nil || m.profile.UserID != userID {
		return nil, nil
	}
	cp := *m.profile
	return &cp, nil
}

func (m *memCompany) Upsert(_ context.Context, p *entity.CompanyProfile) error {
	m.upserts++
	m.profile = p
	return nil
}

type memTransactions struct {
	repository.TransactionRepository
	rows map[string]*entity.Transaction
}

func (m *memTransactions) Create(_ context.Context, t *entity.Transaction) error {
	m.rows[t.ID] = t
	return nil
}

type memActivities struct {
	repository.ActivityRepository
	rows    map[string]*entity.Activity
	updates int
}

func (m *memActivities) Create(_ context.Context, a *entity.Activity) error {
	m.rows[a.ID] = a
	return nil
}

func (m *memActivities) GetByID(_ context.Context, userID, id string) (*entity.Activity, error) {
	a := m.rows[id]
	if a == nil || a.UserID != userID {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *memActivities) Update(_ context.Context, a *entity.Activity) error {
	m.updates++
	m.rows[a.ID] = a
	return nil
}
