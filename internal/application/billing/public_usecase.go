package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/gkdnizduru/finans-proje/internal/application/cached"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

// PublicUseCase acceso sin sesión a una factura o cotización mediante su token.
type PublicUseCase struct {
	invoices  repository.InvoiceRepository
	quotes    repository.QuoteRepository
	customers repository.CustomerRepository
	company   repository.CompanyRepository
	cache     *cached.Reader
}

// NewPublicUseCase construye el caso de uso.
func NewPublicUseCase(
	invoices repository.InvoiceRepository,
	quotes repository.QuoteRepository,
	customers repository.CustomerRepository,
	company repository.CompanyRepository,
	cache *cached.Reader,
) *PublicUseCase {
	return &PublicUseCase{invoices: invoices, quotes: quotes, customers: customers, company: company, cache: cache}
}

// GetInvoice factura por token. Un token mal formado se trata como inexistente.
func (uc *PublicUseCase) GetInvoice(ctx context.Context, token string) (*dto.PublicDocumentResponse, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.invoices.GetByPublicToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoices.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.PublicDocumentResponse{
		Kind:             "invoice",
		Number:           inv.InvoiceNumber,
		IssueDate:        inv.IssueDate,
		DueDate:          inv.DueDate,
		Status:           inv.Status,
		Currency:         inv.Currency,
		PricesIncludeTax: inv.PricesIncludeTax,
		Subtotal:         inv.Subtotal,
		TaxAmount:        inv.TaxAmount,
		TotalAmount:      inv.TotalAmount,
		Notes:            inv.Notes,
		Items:            ToInvoiceResponse(inv, items).Items,
	}
	if err := uc.fillParties(ctx, out, inv.UserID, inv.CustomerID); err != nil {
		return nil, err
	}
	return out, nil
}

// GetQuote cotización por token; CanRespond indica si todavía se puede aceptar o rechazar.
func (uc *PublicUseCase) GetQuote(ctx context.Context, token string) (*dto.PublicDocumentResponse, error) {
	q, err := uc.quoteByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	items, err := uc.quotes.GetItems(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.PublicDocumentResponse{
		Kind:             "quote",
		Number:           q.QuoteNumber,
		IssueDate:        q.IssueDate,
		DueDate:          q.ValidUntil,
		Status:           q.Status,
		Currency:         q.Currency,
		PricesIncludeTax: q.PricesIncludeTax,
		Subtotal:         q.Subtotal,
		TaxAmount:        q.TaxAmount,
		TotalAmount:      q.TotalAmount,
		Notes:            q.Notes,
		Items:            ToQuoteResponse(q, items).Items,
		CanRespond:       q.CanRespond(),
	}
	if err := uc.fillParties(ctx, out, q.UserID, q.CustomerID); err != nil {
		return nil, err
	}
	return out, nil
}

// RespondQuote el cliente acepta o rechaza la cotización. Solo desde draft o sent;
// en cualquier otro estado devuelve domain.ErrConflict.
func (uc *PublicUseCase) RespondQuote(ctx context.Context, token, status string) error {
	if status != entity.QuoteStatusAccepted && status != entity.QuoteStatusRejected {
		return domain.ErrInvalidInput
	}
	q, err := uc.quoteByToken(ctx, token)
	if err != nil {
		return err
	}
	if !q.CanRespond() {
		return domain.ErrConflict
	}
	if err := uc.quotes.UpdateStatusByToken(ctx, token, status); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, q.UserID, cached.Quotes)
	return nil
}

func (uc *PublicUseCase) quoteByToken(ctx context.Context, token string) (*entity.Quote, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, domain.ErrNotFound
	}
	q, err := uc.quotes.GetByPublicToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return q, nil
}

func (uc *PublicUseCase) fillParties(ctx context.Context, out *dto.PublicDocumentResponse, userID, customerID string) error {
	profile, err := uc.company.Get(ctx, userID)
	if err != nil {
		return err
	}
	if profile != nil {
		out.Company = &dto.PublicPartyDTO{
			Name:      profile.Name,
			TaxNumber: profile.TaxNumber,
			TaxOffice: profile.TaxOffice,
			Address:   profile.Address,
			Email:     profile.Email,
			Phone:     profile.Phone,
		}
	}
	c, err := uc.customers.GetByID(ctx, userID, customerID)
	if err != nil {
		return err
	}
	if c != nil {
		out.Customer = &dto.PublicPartyDTO{
			Name:      c.Name,
			TaxNumber: c.TaxNumber,
			TaxOffice: c.TaxOffice,
			Address:   c.Address,
		}
	}
	return nil
}
