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

// QuoteUseCase cotizaciones y su conversión a factura.
type QuoteUseCase struct {
	quotes    repository.QuoteRepository
	customers repository.CustomerRepository
	tx        ports.TxRunner
	cache     *cached.Reader
	now       func() time.Time
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(
	quotes repository.QuoteRepository,
	customers repository.CustomerRepository,
	tx ports.TxRunner,
	cache *cached.Reader,
) *QuoteUseCase {
	return &QuoteUseCase{quotes: quotes, customers: customers, tx: tx, cache: cache, now: time.Now}
}

// Create calcula totales y guarda cabecera + líneas.
func (uc *QuoteUseCase) Create(ctx context.Context, userID string, in dto.QuoteRequest) (*dto.QuoteResponse, error) {
	if err := requireItems(in.Items); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.QuoteStatusDraft
	}
	if !editableQuoteStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if err := ensureCustomer(ctx, uc.customers, userID, in.CustomerID); err != nil {
		return nil, err
	}
	doc, err := PriceItems(in.Items, in.PricesIncludeTax)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	q := &entity.Quote{
		ID:               uuid.New().String(),
		UserID:           userID,
		CustomerID:       in.CustomerID,
		QuoteNumber:      in.QuoteNumber,
		IssueDate:        truncateDay(in.IssueDate),
		ValidUntil:       in.ValidUntil,
		Status:           status,
		Currency:         currencyOr(in.Currency),
		PricesIncludeTax: in.PricesIncludeTax,
		Subtotal:         doc.Subtotal,
		TaxAmount:        doc.Tax,
		TotalAmount:      doc.Total,
		Notes:            in.Notes,
		PublicToken:      NewPublicToken(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	var items []*entity.QuoteItem
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if q.QuoteNumber == "" {
			n, err := NextNumber(ctx, r.Quotes, QuotePrefix, userID, q.IssueDate)
			if err != nil {
				return err
			}
			q.QuoteNumber = n
		}
		if err := r.Quotes.Create(ctx, q); err != nil {
			return err
		}
		var err error
		items, err = insertQuoteItems(ctx, r.Quotes, q.ID, doc)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Quotes)
	return ToQuoteResponse(q, items), nil
}

func insertQuoteItems(ctx context.Context, repo repository.QuoteRepository, quoteID string, doc *PricedDocument) ([]*entity.QuoteItem, error) {
	items := make([]*entity.QuoteItem, 0, len(doc.Lines))
	for i, l := range doc.Lines {
		it := &entity.QuoteItem{
			ID:          uuid.New().String(),
			QuoteID:     quoteID,
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

// Get cotización con líneas; nil si no existe.
func (uc *QuoteUseCase) Get(ctx context.Context, userID, id string) (*dto.QuoteResponse, error) {
	q, err := uc.quotes.GetByID(ctx, userID, id)
	if err != nil || q == nil {
		return nil, err
	}
	items, err := uc.quotes.GetItems(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return ToQuoteResponse(q, items), nil
}

func (uc *QuoteUseCase) List(ctx context.Context, userID string, f repository.DocumentFilter) (*dto.QuoteListResponse, error) {
	key := cached.Key(userID, cached.Quotes, f.Status, f.CustomerID, f.Limit, f.Offset)
	return cached.Load(ctx, uc.cache, key, func(ctx context.Context) (*dto.QuoteListResponse, error) {
		list, total, err := uc.quotes.List(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		items := make([]dto.QuoteResponse, 0, len(list))
		for _, q := range list {
			items = append(items, *ToQuoteResponse(q, nil))
		}
		return &dto.QuoteListResponse{
			Items: items,
			Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
		}, nil
	})
}

// Update reemplaza cabecera y líneas. Una cotización convertida ya no se edita.
func (uc *QuoteUseCase) Update(ctx context.Context, userID, id string, in dto.QuoteRequest) (*dto.QuoteResponse, error) {
	if err := requireItems(in.Items); err != nil {
		return nil, err
	}
	if in.Status != "" && !editableQuoteStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	q, err := uc.quotes.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if q.Status == entity.QuoteStatusConverted {
		return nil, domain.ErrConflict
	}
	if in.CustomerID != q.CustomerID {
		if err := ensureCustomer(ctx, uc.customers, userID, in.CustomerID); err != nil {
			return nil, err
		}
	}
	doc, err := PriceItems(in.Items, in.PricesIncludeTax)
	if err != nil {
		return nil, err
	}

	q.CustomerID = in.CustomerID
	if in.QuoteNumber != "" {
		q.QuoteNumber = in.QuoteNumber
	}
	q.IssueDate = truncateDay(in.IssueDate)
	q.ValidUntil = in.ValidUntil
	if in.Status != "" {
		q.Status = in.Status
	}
	q.Currency = currencyOr(in.Currency)
	q.PricesIncludeTax = in.PricesIncludeTax
	q.Notes = in.Notes
	q.Subtotal, q.TaxAmount, q.TotalAmount = doc.Subtotal, doc.Tax, doc.Total
	q.UpdatedAt = uc.now()

	var items []*entity.QuoteItem
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Quotes.Update(ctx, q); err != nil {
			return err
		}
		if err := r.Quotes.DeleteItems(ctx, q.ID); err != nil {
			return err
		}
		var err error
		items, err = insertQuoteItems(ctx, r.Quotes, q.ID, doc)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Quotes)
	return ToQuoteResponse(q, items), nil
}

// UpdateStatus cambia el estado. converted solo se alcanza con Convert.
func (uc *QuoteUseCase) UpdateStatus(ctx context.Context, userID, id, status string) error {
	if !editableQuoteStatus(status) {
		return domain.ErrInvalidInput
	}
	q, err := uc.quotes.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if q == nil {
		return domain.ErrNotFound
	}
	if q.Status == entity.QuoteStatusConverted {
		return domain.ErrConflict
	}
	if err := uc.quotes.UpdateStatus(ctx, userID, id, status); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, userID, cached.Quotes)
	return nil
}

// Convert crea una factura borrador con las líneas y totales de la cotización y marca la
// cotización como converted. Convertir dos veces devuelve domain.ErrConflict.
func (uc *QuoteUseCase) Convert(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	q, err := uc.quotes.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if q.Status == entity.QuoteStatusConverted || q.ConvertedInvoiceID != nil {
		return nil, domain.ErrConflict
	}
	if q.Status == entity.QuoteStatusRejected {
		return nil, fmt.Errorf("%w: la cotización fue rechazada", domain.ErrConflict)
	}
	quoteItems, err := uc.quotes.GetItems(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	quoteID := q.ID
	inv := &entity.Invoice{
		ID:               uuid.New().String(),
		UserID:           userID,
		CustomerID:       q.CustomerID,
		IssueDate:        truncateDay(now),
		Status:           entity.InvoiceStatusDraft,
		Currency:         q.Currency,
		PricesIncludeTax: q.PricesIncludeTax,
		Subtotal:         q.Subtotal,
		TaxAmount:        q.TaxAmount,
		TotalAmount:      q.TotalAmount,
		Notes:            q.Notes,
		PublicToken:      NewPublicToken(),
		QuoteID:          &quoteID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	var items []*entity.InvoiceItem
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		n, err := NextNumber(ctx, r.Invoices, InvoicePrefix, userID, inv.IssueDate)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = n
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		for _, qi := range quoteItems {
			it := &entity.InvoiceItem{
				ID:          uuid.New().String(),
				InvoiceID:   inv.ID,
				ProductID:   qi.ProductID,
				Description: qi.Description,
				Quantity:    qi.Quantity,
				UnitPrice:   qi.UnitPrice,
				TaxRate:     qi.TaxRate,
				TaxAmount:   qi.TaxAmount,
				LineTotal:   qi.LineTotal,
				Position:    qi.Position,
			}
			if err := r.Invoices.CreateItem(ctx, it); err != nil {
				return err
			}
			items = append(items, it)
		}
		return r.Quotes.MarkConverted(ctx, userID, q.ID, inv.ID)
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Quotes, cached.Invoices, cached.Dashboard)
	return ToInvoiceResponse(inv, items), nil
}

// Delete borra la cotización y sus líneas.
func (uc *QuoteUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.quotes.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, userID, cached.Quotes)
	return nil
}

func editableQuoteStatus(s string) bool {
	switch s {
	case entity.QuoteStatusDraft, entity.QuoteStatusSent, entity.QuoteStatusAccepted, entity.QuoteStatusRejected:
		return true
	}
	return false
}

// ToQuoteResponse mapea cabecera y líneas.
func ToQuoteResponse(q *entity.Quote, items []*entity.QuoteItem) *dto.QuoteResponse {
	out := &dto.QuoteResponse{
		ID:                 q.ID,
		CustomerID:         q.CustomerID,
		QuoteNumber:        q.QuoteNumber,
		IssueDate:          q.IssueDate,
		ValidUntil:         q.ValidUntil,
		Status:             q.Status,
		Currency:           q.Currency,
		PricesIncludeTax:   q.PricesIncludeTax,
		Subtotal:           q.Subtotal,
		TaxAmount:          q.TaxAmount,
		TotalAmount:        q.TotalAmount,
		Notes:              q.Notes,
		PublicToken:        q.PublicToken,
		ConvertedInvoiceID: q.ConvertedInvoiceID,
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
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
