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
	_ repository.DealRepository     = (*DealRepo)(nil)
	_ repository.ActivityRepository = (*ActivityRepo)(nil)
)

// DealRepo oportunidades de venta.
type DealRepo struct {
	q Querier
}

// NewDealRepository construye el adaptador.
func NewDealRepository(q Querier) *DealRepo {
	return &DealRepo{q: q}
}

const dealColumns = `id, user_id, customer_id, title, value, currency, stage, expected_close_date, notes, created_at, updated_at`

func scanDeal(row pgx.Row) (*entity.Deal, error) {
	var d entity.Deal
	if err := row.Scan(&d.ID, &d.UserID, &d.CustomerID, &d.Title, &d.Value, &d.Currency, &d.Stage,
		&d.ExpectedCloseDate, &d.Notes, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DealRepo) Create(ctx context.Context, d *entity.Deal) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO deals (`+dealColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		d.ID, d.UserID, d.CustomerID, d.Title, d.Value, d.Currency, d.Stage, d.ExpectedCloseDate, d.Notes,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert deal: %w", err)
	}
	return nil
}

func (r *DealRepo) GetByID(ctx context.Context, userID, id string) (*entity.Deal, error) {
	d, err := scanDeal(r.q.QueryRow(ctx, `SELECT `+dealColumns+` FROM deals WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deal: %w", err)
	}
	return d, nil
}

func (r *DealRepo) List(ctx context.Context, userID string, f repository.DealFilter) ([]*entity.Deal, error) {
	w := newWhere(userID)
	w.addIf(f.CustomerID != "", "customer_id = $%d", f.CustomerID)
	w.addIf(f.Stage != "", "stage = $%d", f.Stage)
	query := `SELECT ` + dealColumns + ` FROM deals` + w.sql() + ` ORDER BY created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DealRepo) Update(ctx context.Context, d *entity.Deal) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE deals SET customer_id = $3, title = $4, value = $5, currency = $6, stage = $7,
		       expected_close_date = $8, notes = $9, updated_at = $10
		WHERE user_id = $1 AND id = $2`,
		d.UserID, d.ID, d.CustomerID, d.Title, d.Value, d.Currency, d.Stage, d.ExpectedCloseDate, d.Notes, d.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update deal: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

func (r *DealRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM deals WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

func (r *DealRepo) DeleteByCustomer(ctx context.Context, userID, customerID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM deals WHERE user_id = $1 AND customer_id = $2`, userID, customerID); err != nil {
		return fmt.Errorf("delete customer deals: %w", err)
	}
	return nil
}

// ActivityRepo actividades comerciales.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador.
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

const activityColumns = `id, user_id, customer_id, deal_id, type, subject, description, due_date, completed, completed_at, created_at, updated_at`

func scanActivity(row pgx.Row) (*entity.Activity, error) {
	var a entity.Activity
	if err := row.Scan(&a.ID, &a.UserID, &a.CustomerID, &a.DealID, &a.Type, &a.Subject, &a.Description,
		&a.DueDate, &a.Completed, &a.CompletedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO activities (`+activityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.UserID, a.CustomerID, a.DealID, a.Type, a.Subject, a.Description, a.DueDate, a.Completed,
		a.CompletedAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepo) GetByID(ctx context.Context, userID, id string) (*entity.Activity, error) {
	a, err := scanActivity(r.q.QueryRow(ctx, `SELECT `+activityColumns+` FROM activities WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return a, nil
}

// List ordena por vencimiento; las actividades sin fecha van al final.
func (r *ActivityRepo) List(ctx context.Context, userID string, f repository.ActivityFilter) ([]*entity.Activity, error) {
	w := newWhere(userID)
	w.addIf(f.CustomerID != "", "customer_id = $%d", f.CustomerID)
	w.addIf(f.DealID != "", "deal_id = $%d", f.DealID)
	if f.Completed != nil {
		w.add("completed = $%d", *f.Completed)
	}
	query := `SELECT ` + activityColumns + ` FROM activities` + w.sql() +
		` ORDER BY due_date ASC NULLS LAST, created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *ActivityRepo) Update(ctx context.Context, a *entity.Activity) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE activities SET customer_id = $3, deal_id = $4, type = $5, subject = $6, description = $7,
		       due_date = $8, completed = $9, completed_at = $10, updated_at = $11
		WHERE user_id = $1 AND id = $2`,
		a.UserID, a.ID, a.CustomerID, a.DealID, a.Type, a.Subject, a.Description, a.DueDate, a.Completed,
		a.CompletedAt, a.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update activity: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

func (r *ActivityRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM activities WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

func (r *ActivityRepo) DeleteByCustomer(ctx context.Context, userID, customerID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM activities WHERE user_id = $1 AND customer_id = $2`, userID, customerID); err != nil {
		return fmt.Errorf("delete customer activities: %w", err)
	}
	return nil
}
