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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, user_id, type, name, email, phone, tax_number, tax_office, address, city, notes, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.UserID, &c.Type, &c.Name, &c.Email, &c.Phone, &c.TaxNumber, &c.TaxOffice,
		&c.Address, &c.City, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.UserID, c.Type, c.Name, c.Email, c.Phone, c.TaxNumber, c.TaxOffice, c.Address, c.City,
		c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente del usuario por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, userID, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE user_id = $1 AND id = $2`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List lista clientes del usuario con búsqueda y paginación. Devuelve también el total.
func (r *CustomerRepo) List(ctx context.Context, userID string, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	w := newWhere(userID)
	w.addIf(f.Type != "", "type = $%d", f.Type)
	w.addIf(f.Search != "", "(name ILIKE $%[1]d OR email ILIKE $%[1]d OR tax_number ILIKE $%[1]d)", "%"+f.Search+"%")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query := `SELECT ` + customerColumns + ` FROM customers` + w.sql() + ` ORDER BY name` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update actualiza un cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET type = $3, name = $4, email = $5, phone = $6, tax_number = $7, tax_office = $8,
		       address = $9, city = $10, notes = $11, updated_at = $12
		WHERE user_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		c.UserID, c.ID, c.Type, c.Name, c.Email, c.Phone, c.TaxNumber, c.TaxOffice, c.Address, c.City,
		c.Notes, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

// Delete elimina un cliente. Si tiene filas vinculadas devuelve domain.ErrForeignKey.
func (r *CustomerRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrForeignKey
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}
