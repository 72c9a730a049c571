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
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.AirlineRepository  = (*AirlineRepo)(nil)
)

// CategoryRepo categorías de ingresos/egresos.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO categories (id, user_id, name, type, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.UserID, c.Name, c.Type, c.Color, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, userID, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, name, type, color, created_at, updated_at
		FROM categories WHERE user_id = $1 AND id = $2`, userID, id,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE categories SET name = $3, type = $4, color = $5, updated_at = $6
		WHERE user_id = $1 AND id = $2`,
		c.UserID, c.ID, c.Name, c.Type, c.Color, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

func (r *CategoryRepo) List(ctx context.Context, userID, typ string) ([]*entity.Category, error) {
	w := newWhere(userID)
	w.addIf(typ != "", "type = $%d", typ)
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, name, type, color, created_at, updated_at
		FROM categories`+w.sql()+` ORDER BY type, name`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina la categoría; las transacciones quedan sin categoría (ON DELETE SET NULL).
func (r *CategoryRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

// AirlineRepo aerolíneas del usuario.
type AirlineRepo struct {
	q Querier
}

// NewAirlineRepository construye el adaptador.
func NewAirlineRepository(q Querier) *AirlineRepo {
	return &AirlineRepo{q: q}
}

func (r *AirlineRepo) Create(ctx context.Context, a *entity.Airline) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO airlines (id, user_id, name, code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.UserID, a.Name, a.Code, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert airline: %w", err)
	}
	return nil
}

func (r *AirlineRepo) GetByID(ctx context.Context, userID, id string) (*entity.Airline, error) {
	var a entity.Airline
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, name, code, created_at, updated_at
		FROM airlines WHERE user_id = $1 AND id = $2`, userID, id,
	).Scan(&a.ID, &a.UserID, &a.Name, &a.Code, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get airline: %w", err)
	}
	return &a, nil
}

func (r *AirlineRepo) Update(ctx context.Context, a *entity.Airline) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE airlines SET name = $3, code = $4, updated_at = $5
		WHERE user_id = $1 AND id = $2`,
		a.UserID, a.ID, a.Name, a.Code, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update airline: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

func (r *AirlineRepo) List(ctx context.Context, userID string) ([]*entity.Airline, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, name, code, created_at, updated_at
		FROM airlines WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list airlines: %w", err)
	}
	defer rows.Close()
	var list []*entity.Airline
	for rows.Next() {
		var a entity.Airline
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Code, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan airline: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete elimina la aerolínea; los billetes conservan airline_id NULL.
func (r *AirlineRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM airlines WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete airline: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}
