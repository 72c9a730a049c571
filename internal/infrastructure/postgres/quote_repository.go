package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo cotizaciones y sus líneas (usable con pool o tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador.
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `id, user_id, customer_id, quote_number, issue_date, valid_until, status, currency,
	prices_include_tax, subtotal, tax_amount, total_amount, notes, public_token, converted_invoice_id,
	created_at, updated_at`

const quoteItemColumns = `id, quote_id, product_id, description, quantity, unit_price, tax_rate, tax_amount, line_total, position`

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var q entity.Quote
	if err := row.Scan(&q.ID, &q.UserID, &q.CustomerID, &q.QuoteNumber, &q.IssueDate, &q.ValidUntil, &q.Status,
		&q.Currency, &q.PricesIncludeTax, &q.Subtotal, &q.TaxAmount, &q.TotalAmount, &q.Notes, &q.PublicToken,
		&q.ConvertedInvoiceID, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuoteRepo) Create(ctx context.Context, q *entity.Quote) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO quotes (`+quoteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		q.ID, q.UserID, q.CustomerID, q.QuoteNumber, q.IssueDate, q.ValidUntil, q.Status, q.Currency,
		q.PricesIncludeTax, q.Subtotal, q.TaxAmount, q.TotalAmount, q.Notes, q.PublicToken,
		q.ConvertedInvoiceID, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

func (r *QuoteRepo) CreateItem(ctx context.Context, it *entity.QuoteItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO quote_items (`+quoteItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		it.ID, it.QuoteID, it.ProductID, it.Description, it.Quantity, it.UnitPrice, it.TaxRate,
		it.TaxAmount, it.LineTotal, it.Position,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert quote item: %w", err)
	}
	return nil
}

func (r *QuoteRepo) Update(ctx context.Context, q *entity.Quote) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE quotes SET customer_id = $3, quote_number = $4, issue_date = $5, valid_until = $6, status = $7,
		       currency = $8, prices_include_tax = $9, subtotal = $10, tax_amount = $11, total_amount = $12,
		       notes = $13, updated_at = $14
		WHERE user_id = $1 AND id = $2`,
		q.UserID, q.ID, q.CustomerID, q.QuoteNumber, q.IssueDate, q.ValidUntil, q.Status, q.Currency,
		q.PricesIncludeTax, q.Subtotal, q.TaxAmount, q.TotalAmount, q.Notes, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update quote: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

func (r *QuoteRepo) UpdateStatus(ctx context.Context, userID, id, status string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE quotes SET status = $3, updated_at = now() WHERE user_id = $1 AND id = $2`, userID, id, status)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

// MarkConverted solo afecta cotizaciones aún no convertidas; si no hay fila devuelve ErrConflict.
func (r *QuoteRepo) MarkConverted(ctx context.Context, userID, id, invoiceID string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE quotes SET status = 'converted', converted_invoice_id = $3, updated_at = now()
		WHERE user_id = $1 AND id = $2 AND converted_invoice_id IS NULL`,
		userID, id, invoiceID,
	)
	if err != nil {
		return fmt.Errorf("mark quote converted: %w", err)
	}
	return expectOne(tag, domain.ErrConflict)
}

// ReleaseConversion no falla si ninguna cotización apunta a la factura.
func (r *QuoteRepo) ReleaseConversion(ctx context.Context, userID, invoiceID string) error {
	if _, err := r.q.Exec(ctx, `
		UPDATE quotes SET status = 'accepted', converted_invoice_id = NULL, updated_at = now()
		WHERE user_id = $1 AND converted_invoice_id = $2`,
		userID, invoiceID,
	); err != nil {
		return fmt.Errorf("release quote conversion: %w", err)
	}
	return nil
}

func (r *QuoteRepo) GetByID(ctx context.Context, userID, id string) (*entity.Quote, error) {
	q, err := scanQuote(r.q.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

func (r *QuoteRepo) GetByPublicToken(ctx context.Context, token string) (*entity.Quote, error) {
	q, err := scanQuote(r.q.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE public_token = $1`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote by token: %w", err)
	}
	return q, nil
}

// UpdateStatusByToken solo se aplica mientras la cotización está en draft o sent.
func (r *QuoteRepo) UpdateStatusByToken(ctx context.Context, token, status string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE quotes SET status = $2, updated_at = now()
		WHERE public_token = $1 AND status IN ('draft', 'sent')`, token, status)
	if err != nil {
		return fmt.Errorf("update quote status by token: %w", err)
	}
	return expectOne(tag, domain.ErrConflict)
}

func (r *QuoteRepo) GetItems(ctx context.Context, quoteID string) ([]*entity.QuoteItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+quoteItemColumns+` FROM quote_items WHERE quote_id = $1 ORDER BY position`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuoteItem
	for rows.Next() {
		var it entity.QuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.ProductID, &it.Description, &it.Quantity, &it.UnitPrice,
			&it.TaxRate, &it.TaxAmount, &it.LineTotal, &it.Position); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *QuoteRepo) List(ctx context.Context, userID string, f repository.DocumentFilter) ([]*entity.Quote, int, error) {
	w := newWhere(userID)
	w.addIf(f.Status != "", "status = $%d", f.Status)
	w.addIf(f.CustomerID != "", "customer_id = $%d", f.CustomerID)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM quotes`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quotes: %w", err)
	}
	query := `SELECT ` + quoteColumns + ` FROM quotes` + w.sql() +
		` ORDER BY issue_date DESC, created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, q)
	}
	return list, total, rows.Err()
}

func (r *QuoteRepo) MaxSequence(ctx context.Context, userID, prefix string, year int) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(split_part(quote_number, '-', 3)::int), 0)
		FROM quotes
		WHERE user_id = $1 AND quote_number ~ $2`,
		userID, sequencePattern(prefix, year),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("max quote sequence: %w", err)
	}
	return n, nil
}

func (r *QuoteRepo) DeleteItems(ctx context.Context, quoteID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM quote_items WHERE quote_id = $1`, quoteID); err != nil {
		return fmt.Errorf("delete quote items: %w", err)
	}
	return nil
}

func (r *QuoteRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.q.Exec(ctx, `
		DELETE FROM quote_items WHERE quote_id IN (SELECT id FROM quotes WHERE user_id = $1 AND id = $2)`,
		userID, id); err != nil {
		return fmt.Errorf("delete quote items: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM quotes WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

func (r *QuoteRepo) DeleteByCustomer(ctx context.Context, userID, customerID string) error {
	if _, err := r.q.Exec(ctx, `
		DELETE FROM quote_items
		WHERE quote_id IN (SELECT id FROM quotes WHERE user_id = $1 AND customer_id = $2)`,
		userID, customerID); err != nil {
		return fmt.Errorf("delete customer quote items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM quotes WHERE user_id = $1 AND customer_id = $2`, userID, customerID); err != nil {
		return fmt.Errorf("delete customer quotes: %w", err)
	}
	return nil
}
