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
	_ repository.NoteRepository       = (*NoteRepo)(nil)
	_ repository.AttachmentRepository = (*AttachmentRepo)(nil)
)

// NoteRepo notas de cliente.
type NoteRepo struct {
	q Querier
}

// NewNoteRepository construye el adaptador.
func NewNoteRepository(q Querier) *NoteRepo {
	return &NoteRepo{q: q}
}

func (r *NoteRepo) Create(ctx context.Context, n *entity.Note) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO notes (id, user_id, customer_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.UserID, n.CustomerID, n.Content, n.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// ListByCustomer devuelve las notas más recientes primero.
func (r *NoteRepo) ListByCustomer(ctx context.Context, userID, customerID string) ([]*entity.Note, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, customer_id, content, created_at
		FROM notes WHERE user_id = $1 AND customer_id = $2 ORDER BY created_at DESC`,
		userID, customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Note
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.CustomerID, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

func (r *NoteRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM notes WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

func (r *NoteRepo) DeleteByCustomer(ctx context.Context, userID, customerID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM notes WHERE user_id = $1 AND customer_id = $2`, userID, customerID); err != nil {
		return fmt.Errorf("delete customer notes: %w", err)
	}
	return nil
}

// AttachmentRepo metadatos de archivos de cliente.
type AttachmentRepo struct {
	q Querier
}

// NewAttachmentRepository construye el adaptador.
func NewAttachmentRepository(q Querier) *AttachmentRepo {
	return &AttachmentRepo{q: q}
}

const attachmentColumns = `id, user_id, customer_id, file_name, storage_key, content_type, size, created_at`

func scanAttachment(row pgx.Row) (*entity.Attachment, error) {
	var a entity.Attachment
	if err := row.Scan(&a.ID, &a.UserID, &a.CustomerID, &a.FileName, &a.StorageKey, &a.ContentType, &a.Size, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttachmentRepo) Create(ctx context.Context, a *entity.Attachment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO attachments (`+attachmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.UserID, a.CustomerID, a.FileName, a.StorageKey, a.ContentType, a.Size, a.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert attachment: %w", err)
	}
	return nil
}

func (r *AttachmentRepo) GetByID(ctx context.Context, userID, id string) (*entity.Attachment, error) {
	a, err := scanAttachment(r.q.QueryRow(ctx,
		`SELECT `+attachmentColumns+` FROM attachments WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attachment: %w", err)
	}
	return a, nil
}

func (r *AttachmentRepo) ListByCustomer(ctx context.Context, userID, customerID string) ([]*entity.Attachment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+attachmentColumns+` FROM attachments WHERE user_id = $1 AND customer_id = $2 ORDER BY created_at DESC`,
		userID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Attachment
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *AttachmentRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM attachments WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

func (r *AttachmentRepo) DeleteByCustomer(ctx context.Context, userID, customerID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM attachments WHERE user_id = $1 AND customer_id = $2`, userID, customerID); err != nil {
		return fmt.Errorf("delete customer attachments: %w", err)
	}
	return nil
}
