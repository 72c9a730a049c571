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

var (
	_ repository.AccountRepository     = (*AccountRepo)(nil)
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
)

// AccountRepo cuentas con saldo calculado a partir de las transacciones.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Saldo = apertura + ingresos - egresos de la cuenta.
const accountSelect = `
	SELECT a.id, a.user_id, a.name, a.type, a.currency, a.opening_balance,
	       a.opening_balance + COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE -t.amount END), 0) AS balance,
	       a.created_at, a.updated_at
	FROM accounts a
	LEFT JOIN transactions t ON t.account_id = a.id`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Currency, &a.OpeningBalance, &a.Balance,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO accounts (id, user_id, name, type, currency, opening_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.UserID, a.Name, a.Type, a.Currency, a.OpeningBalance, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepo) GetByID(ctx context.Context, userID, id string) (*entity.Account, error) {
	a, err := scanAccount(r.q.QueryRow(ctx, accountSelect+`
		WHERE a.user_id = $1 AND a.id = $2
		GROUP BY a.id`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE accounts SET name = $3, type = $4, currency = $5, opening_balance = $6, updated_at = $7
		WHERE user_id = $1 AND id = $2`,
		a.UserID, a.ID, a.Name, a.Type, a.Currency, a.OpeningBalance, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update account: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

func (r *AccountRepo) List(ctx context.Context, userID string) ([]*entity.Account, error) {
	rows, err := r.q.Query(ctx, accountSelect+`
		WHERE a.user_id = $1
		GROUP BY a.id
		ORDER BY a.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Delete elimina la cuenta; sus transacciones quedan sin cuenta (ON DELETE SET NULL).
func (r *AccountRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM accounts WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

// TransactionRepo movimientos financieros.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, user_id, type, amount, currency, description, date, account_id, category_id, customer_id, invoice_id, created_at, updated_at`

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	if err := row.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Currency, &t.Description, &t.Date,
		&t.AccountID, &t.CategoryID, &t.CustomerID, &t.InvoiceID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		t.ID, t.UserID, t.Type, t.Amount, t.Currency, t.Description, t.Date, t.AccountID, t.CategoryID,
		t.CustomerID, t.InvoiceID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, userID, id string) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE transactions SET type = $3, amount = $4, currency = $5, description = $6, date = $7,
		       account_id = $8, category_id = $9, customer_id = $10, invoice_id = $11, updated_at = $12
		WHERE user_id = $1 AND id = $2`,
		t.UserID, t.ID, t.Type, t.Amount, t.Currency, t.Description, t.Date, t.AccountID, t.CategoryID,
		t.CustomerID, t.InvoiceID, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update transaction: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

// List filtra por tipo, cuenta, categoría, cliente y rango de fechas [From, To].
func (r *TransactionRepo) List(ctx context.Context, userID string, f repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	w := newWhere(userID)
	w.addIf(f.Type != "", "type = $%d", f.Type)
	w.addIf(f.AccountID != "", "account_id = $%d", f.AccountID)
	w.addIf(f.CategoryID != "", "category_id = $%d", f.CategoryID)
	w.addIf(f.CustomerID != "", "customer_id = $%d", f.CustomerID)
	if f.From != nil {
		w.add("date >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("date <= $%d", *f.To)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions` + w.sql() +
		` ORDER BY date DESC, created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

func (r *TransactionRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

// DetachCustomer desvincula los movimientos del cliente y los de sus facturas.
func (r *TransactionRepo) DetachCustomer(ctx context.Context, userID, customerID string) error {
	_, err := r.q.Exec(ctx, `
		UPDATE transactions SET customer_id = NULL, invoice_id = NULL, updated_at = now()
		WHERE user_id = $1
		  AND (customer_id = $2
		       OR invoice_id IN (SELECT id FROM invoices WHERE user_id = $1 AND customer_id = $2))`,
		userID, customerID,
	)
	if err != nil {
		return fmt.Errorf("detach customer transactions: %w", err)
	}
	return nil
}
