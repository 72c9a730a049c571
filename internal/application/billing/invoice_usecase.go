package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gkdnizduru/finans-proje/internal/application/cached"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/application/ports"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

// InvoiceUseCase facturas: cabecera y líneas se escriben en una sola transacción.
type InvoiceUseCase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	tx        ports.TxRunner
	cache     *cached.Reader
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	customers repository.CustomerRepository,
	tx ports.TxRunner,
	cache *cached.Reader,
) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices, customers: customers, tx: tx, cache: cache}
}

// Create calcula totales, asigna número si no viene y guarda cabecera + líneas.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := requireItems(in.Items); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.InvoiceStatusDraft
	}
	if !validInvoiceStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if err := ensureCustomer(ctx, uc.customers, userID, in.CustomerID); err != nil {
		return nil, err
	}
	doc, err := PriceItems(in.Items, in.PricesIncludeTax)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:               uuid.New().String(),
		UserID:           userID,
		CustomerID:       in.CustomerID,
		InvoiceNumber:    in.InvoiceNumber,
		IssueDate:        truncateDay(in.IssueDate),
		DueDate:          in.DueDate,
		Status:           status,
		Currency:         currencyOr(in.Currency),
		PricesIncludeTax: in.PricesIncludeTax,
		Notes:            in.Notes,
		PublicToken:      NewPublicToken(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	var items []*entity.InvoiceItem
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		var err error
		items, err = CreateInvoice(ctx, r.Invoices, inv, doc)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, userID)
	return ToInvoiceResponse(inv, items), nil
}

// CreateInvoice persiste una factura ya calculada (numerando si hace falta) y sus líneas.
// Debe llamarse con un repositorio atado a una transacción.
func CreateInvoice(ctx context.Context, repo repository.InvoiceRepository, inv *entity.Invoice, doc *PricedDocument) ([]*entity.InvoiceItem, error) {
	if inv.InvoiceNumber == "" {
		n, err := NextNumber(ctx, repo, InvoicePrefix, inv.UserID, inv.IssueDate)
		if err != nil {
			return nil, err
		}
		inv.InvoiceNumber = n
	}
	inv.Subtotal, inv.TaxAmount, inv.TotalAmount = doc.Subtotal, doc.Tax, doc.Total
	if err := repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return insertInvoiceItems(ctx, repo, inv.ID, doc)
}

func insertInvoiceItems(ctx context.Context, repo repository.InvoiceRepository, invoiceID string, doc *PricedDocument) ([]*entity.InvoiceItem, error) {
	items := make([]*entity.InvoiceItem, 0, len(doc.Lines))
	for i, l := range doc.Lines {
		it := &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoiceID,
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			TaxAmount:   l.TaxAmount,
			LineTotal:   l.LineTotal,
			Position:    i + 1,
		}
		if err := repo.CreateItem(ctx, it); err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		items = append(items, it)
	}
	return items, nil
}

// Get factura con líneas; nil si no existe.
func (uc *InvoiceUseCase) Get(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, userID, id)
	if err != nil || inv == nil {
		return nil, err
	}
	items, err := uc.invoices.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv, items), nil
}

// List cabeceras filtradas por estado y cliente.
func (uc *InvoiceUseCase) List(ctx context.Context, userID string, f repository.DocumentFilter) (*dto.InvoiceListResponse, error) {
	key := cached.Key(userID, cached.Invoices, f.Status, f.CustomerID, f.Limit, f.Offset)
	return cached.Load(ctx, uc.cache, key, func(ctx context.Context) (*dto.InvoiceListResponse, error) {
		list, total, err := uc.invoices.List(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		items := make([]dto.InvoiceResponse, 0, len(list))
		for _, inv := range list {
			items = append(items, *ToInvoiceResponse(inv, nil))
		}
		return &dto.InvoiceListResponse{
			Items: items,
			Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
		}, nil
	})
}

// Update reemplaza cabecera y líneas y recalcula totales. Estado vacío conserva el actual.
func (uc *InvoiceUseCase) Update(ctx context.Context, userID, id string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := requireItems(in.Items); err != nil {
		return nil, err
	}
	if in.Status != "" && !validInvoiceStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoices.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if in.CustomerID != inv.CustomerID {
		if err := ensureCustomer(ctx, uc.customers, userID, in.CustomerID); err != nil {
			return nil, err
		}
	}
	doc, err := PriceItems(in.Items, in.PricesIncludeTax)
	if err != nil {
		return nil, err
	}

	inv.CustomerID = in.CustomerID
	if in.InvoiceNumber != "" {
		inv.InvoiceNumber = in.InvoiceNumber
	}
	inv.IssueDate = truncateDay(in.IssueDate)
	inv.DueDate = in.DueDate
	if in.Status != "" {
		inv.Status = in.Status
	}
	inv.Currency = currencyOr(in.Currency)
	inv.PricesIncludeTax = in.PricesIncludeTax
	inv.Notes = in.Notes
	inv.Subtotal, inv.TaxAmount, inv.TotalAmount = doc.Subtotal, doc.Tax, doc.Total
	inv.UpdatedAt = time.Now()

	var items []*entity.InvoiceItem
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		if err := r.Invoices.DeleteItems(ctx, inv.ID); err != nil {
			return err
		}
		var err error
		items, err = insertInvoiceItems(ctx, r.Invoices, inv.ID, doc)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, userID)
	return ToInvoiceResponse(inv, items), nil
}

// UpdateStatus cambia el estado (draft, sent, paid, overdue, cancelled).
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, userID, id, status string) error {
	if !validInvoiceStatus(status) {
		return domain.ErrInvalidInput
	}
	if err := uc.invoices.UpdateStatus(ctx, userID, id, status); err != nil {
		return err
	}
	uc.invalidate(ctx, userID)
	return nil
}

// Delete borra la factura y sus líneas en una transacción. Si venía de una cotización,
// la cotización vuelve a accepted y puede convertirse de nuevo. Billetes y movimientos
// vinculados pierden la referencia.
func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, id string) error {
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Quotes.ReleaseConversion(ctx, userID, id); err != nil {
			return err
		}
		return r.Invoices.Delete(ctx, userID, id)
	})
	if err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, userID, cached.Invoices, cached.Quotes, cached.Tickets,
		cached.Transactions, cached.Accounts, cached.Dashboard)
	return nil
}

func (uc *InvoiceUseCase) invalidate(ctx context.Context, userID string) {
	uc.cache.Invalidate(ctx, userID, cached.Invoices, cached.Dashboard)
}

func validInvoiceStatus(s string) bool {
	switch s {
	case entity.InvoiceStatusDraft, entity.InvoiceStatusSent, entity.InvoiceStatusPaid,
		entity.InvoiceStatusOverdue, entity.InvoiceStatusCancelled:
		return true
	}
	return false
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

// ToInvoiceResponse mapea cabecera y líneas (items puede ser nil en listados).
func ToInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:               inv.ID,
		CustomerID:       inv.CustomerID,
		InvoiceNumber:    inv.InvoiceNumber,
		IssueDate:        inv.IssueDate,
		DueDate:          inv.DueDate,
		Status:           inv.Status,
		Currency:         inv.Currency,
		PricesIncludeTax: inv.PricesIncludeTax,
		Subtotal:         inv.Subtotal,
		TaxAmount:        inv.TaxAmount,
		TotalAmount:      inv.TotalAmount,
		Notes:            inv.Notes,
		PublicToken:      inv.PublicToken,
		TicketID:         inv.TicketID,
		QuoteID:          inv.QuoteID,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.DocumentItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			TaxAmount:   it.TaxAmount,
			LineTotal:   it.LineTotal,
		})
	}
	return out
}
