package repository

import (
	"context"

	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

// CustomerFilter filtros del listado de clientes.
type CustomerFilter struct {
	Search string // nombre, email o número fiscal (ILIKE)
	Type   string
	Limit  int
	Offset int
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, userID, id string) (*entity.Customer, error)
	List(ctx context.Context, userID string, f CustomerFilter) ([]*entity.Customer, int, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// Delete devuelve domain.ErrForeignKey si hay filas vinculadas y domain.ErrNotFound si no existe.
	Delete(ctx context.Context, userID, id string) error
}

// NoteRepository notas de cliente.
type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	ListByCustomer(ctx context.Context, userID, customerID string) ([]*entity.Note, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteByCustomer(ctx context.Context, userID, customerID string) error
}

// AttachmentRepository metadatos de archivos; el contenido vive en el almacenamiento de objetos.
type AttachmentRepository interface {
	Create(ctx context.Context, a *entity.Attachment) error
	GetByID(ctx context.Context, userID, id string) (*entity.Attachment, error)
	ListByCustomer(ctx context.Context, userID, customerID string) ([]*entity.Attachment, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteByCustomer(ctx context.Context, userID, customerID string) error
}
