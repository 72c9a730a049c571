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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, user_id, customer_id, invoice_number, issue_date, due_date, status, currency,
	prices_include_tax, subtotal, tax_amount, total_amount, notes, public_token, ticket_id, quote_id,
	created_at, updated_at`

const invoiceItemColumns = `id, invoice_id, product_id, description, quantity, unit_price, tax_rate, tax_amount, line_total, position`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var i entity.Invoice
	if err := row.Scan(&i.ID, &i.UserID, &i.CustomerID, &i.InvoiceNumber, &i.IssueDate, &i.DueDate, &i.Status,
		&i.Currency, &i.PricesIncludeTax, &i.Subtotal, &i.TaxAmount, &i.TotalAmount, &i.Notes, &i.PublicToken,
		&i.TicketID, &i.QuoteID, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserta la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, i *entity.Invoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		i.ID, i.UserID, i.CustomerID, i.InvoiceNumber, i.IssueDate, i.DueDate, i.Status, i.Currency,
		i.PricesIncludeTax, i.Subtotal, i.TaxAmount, i.TotalAmount, i.Notes, i.PublicToken, i.TicketID,
		i.QuoteID, i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem inserta una línea.
func (r *InvoiceRepo) CreateItem(ctx context.Context, it *entity.InvoiceItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoice_items (`+invoiceItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		it.ID, it.InvoiceID, it.ProductID, it.Description, it.Quantity, it.UnitPrice, it.TaxRate,
		it.TaxAmount, it.LineTotal, it.Position,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// Update reescribe la cabecera editable y los totales.
func (r *InvoiceRepo) Update(ctx context.Context, i *entity.Invoice) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoices SET customer_id = $3, invoice_number = $4, issue_date = $5, due_date = $6, status = $7,
		       currency = $8, prices_include_tax = $9, subtotal = $10, tax_amount = $11, total_amount = $12,
		       notes = $13, updated_at = $14
		WHERE user_id = $1 AND id = $2`,
		i.UserID, i.ID, i.CustomerID, i.InvoiceNumber, i.IssueDate, i.DueDate, i.Status, i.Currency,
		i.PricesIncludeTax, i.Subtotal, i.TaxAmount, i.TotalAmount, i.Notes, i.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

// UpdateStatus cambia solo el estado.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, userID, id, status string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE invoices SET status = $3, updated_at = now() WHERE user_id = $1 AND id = $2`, userID, id, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

// GetByID obtiene la cabecera de una factura del usuario.
func (r *InvoiceRepo) GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	i, err := scanInvoice(r.q.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return i, nil
}

// GetByPublicToken acceso público sin usuario.
func (r *InvoiceRepo) GetByPublicToken(ctx context.Context, token string) (*entity.Invoice, error) {
	i, err := scanInvoice(r.q.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE public_token = $1`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by token: %w", err)
	}
	return i, nil
}

// GetItems devuelve las líneas en orden.
func (r *InvoiceRepo) GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+invoiceItemColumns+` FROM invoice_items WHERE invoice_id = $1 ORDER BY position`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.Description, &it.Quantity, &it.UnitPrice,
			&it.TaxRate, &it.TaxAmount, &it.LineTotal, &it.Position); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista cabeceras con filtros; más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, userID string, f repository.DocumentFilter) ([]*entity.Invoice, int, error) {
	w := newWhere(userID)
	w.addIf(f.Status != "", "status = $%d", f.Status)
	w.addIf(f.CustomerID != "", "customer_id = $%d", f.CustomerID)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices` + w.sql() +
		` ORDER BY issue_date DESC, created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		i, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, i)
	}
	return list, total, rows.Err()
}

// MaxSequence mayor secuencia entre los números INV-<año>-NNNN del usuario. Los números
// manuales con otro formato no cuentan.
func (r *InvoiceRepo) MaxSequence(ctx context.Context, userID, prefix string, year int) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(split_part(invoice_number, '-', 3)::int), 0)
		FROM invoices
		WHERE user_id = $1 AND invoice_number ~ $2`,
		userID, sequencePattern(prefix, year),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("max invoice sequence: %w", err)
	}
	return n, nil
}

// DeleteItems borra todas las líneas de la factura.
func (r *InvoiceRepo) DeleteItems(ctx context.Context, invoiceID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

// Delete borra líneas y cabecera. Billetes, movimientos y cotizaciones que la referencian
// quedan con invoice_id NULL por ON DELETE SET NULL.
func (r *InvoiceRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.q.Exec(ctx, `
		DELETE FROM invoice_items WHERE invoice_id IN (SELECT id FROM invoices WHERE user_id = $1 AND id = $2)`,
		userID, id); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrForeignKey
		}
		return fmt.Errorf("delete invoice: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

// DeleteByCustomer borra líneas y facturas del cliente.
func (r *InvoiceRepo) DeleteByCustomer(ctx context.Context, userID, customerID string) error {
	if _, err := r.q.Exec(ctx, `
		DELETE FROM invoice_items
		WHERE invoice_id IN (SELECT id FROM invoices WHERE user_id = $1 AND customer_id = $2)`,
		userID, customerID); err != nil {
		return fmt.Errorf("delete customer invoice items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE user_id = $1 AND customer_id = $2`, userID, customerID); err != nil {
		return fmt.Errorf("delete customer invoices: %w", err)
	}
	return nil
}
