package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gkdnizduru/finans-proje/internal/application/cached"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/application/ports"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes, notas y adjuntos, y borrado en cascada.
type CustomerUseCase struct {
	repo        repository.CustomerRepository
	notes       repository.NoteRepository
	attachments repository.AttachmentRepository
	tx          ports.TxRunner
	storage     ports.ObjectStorage // nil = adjuntos deshabilitados
	cache       *cached.Reader
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(
	repo repository.CustomerRepository,
	notes repository.NoteRepository,
	attachments repository.AttachmentRepository,
	tx ports.TxRunner,
	storage ports.ObjectStorage,
	cache *cached.Reader,
) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, notes: notes, attachments: attachments, tx: tx, storage: storage, cache: cache}
}

// Create crea un cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, userID string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyCustomer(c, in)
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Customers)
	return toCustomerResponse(c), nil
}

// GetByID obtiene un cliente; nil si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, userID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || c == nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// List lista clientes con búsqueda y paginación.
func (uc *CustomerUseCase) List(ctx context.Context, userID string, f repository.CustomerFilter) (*dto.CustomerListResponse, error) {
	key := cached.Key(userID, cached.Customers, f.Search, f.Type, f.Limit, f.Offset)
	return cached.Load(ctx, uc.cache, key, func(ctx context.Context) (*dto.CustomerListResponse, error) {
		list, total, err := uc.repo.List(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		items := make([]dto.CustomerResponse, 0, len(list))
		for _, c := range list {
			items = append(items, *toCustomerResponse(c))
		}
		return &dto.CustomerListResponse{
			Items: items,
			Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
		}, nil
	})
}

// Update reemplaza los datos del cliente; nil si no existe.
func (uc *CustomerUseCase) Update(ctx context.Context, userID, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || c == nil {
		return nil, err
	}
	applyCustomer(c, in)
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Customers)
	return toCustomerResponse(c), nil
}

// Delete borra el cliente. Sin cascade, si tiene registros vinculados devuelve
// domain.ErrCustomerHasInvoices para que el llamador pida una segunda confirmación.
//
// Con cascade se borra todo lo vinculado en una transacción y en este orden:
// cotizaciones, oportunidades, actividades, notas, adjuntos, reservas de hotel,
// billetes, desvinculación de movimientos, facturas y finalmente el cliente.
func (uc *CustomerUseCase) Delete(ctx context.Context, userID, id string, cascade bool) error {
	if !cascade {
		err := uc.repo.Delete(ctx, userID, id)
		if errors.Is(err, domain.ErrForeignKey) {
			return domain.ErrCustomerHasInvoices
		}
		if err != nil {
			return err
		}
		uc.cache.Invalidate(ctx, userID, cached.Customers)
		return nil
	}

	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	files, err := uc.attachments.ListByCustomer(ctx, userID, id)
	if err != nil {
		return err
	}

	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		steps := []struct {
			name string
			fn   func(ctx context.Context, userID, customerID string) error
		}{
			{"quotes", r.Quotes.DeleteByCustomer},
			{"deals", r.Deals.DeleteByCustomer},
			{"activities", r.Activities.DeleteByCustomer},
			{"notes", r.Notes.DeleteByCustomer},
			{"attachments", r.Attachments.DeleteByCustomer},
			{"hotel reservations", r.Hotels.DeleteByCustomer},
			{"tickets", r.Tickets.DeleteByCustomer},
			{"transactions", r.Transactions.DetachCustomer},
			{"invoices", r.Invoices.DeleteByCustomer},
		}
		for _, s := range steps {
			if err := s.fn(ctx, userID, id); err != nil {
				return fmt.Errorf("cascade %s: %w", s.name, err)
			}
		}
		return r.Customers.Delete(ctx, userID, id)
	})
	if err != nil {
		return err
	}

	// Los objetos se borran después del commit; un fallo solo deja archivos huérfanos.
	if uc.storage != nil {
		for _, f := range files {
			if err := uc.storage.Delete(ctx, f.StorageKey); err != nil {
				log.Warn().Err(err).Str("key", f.StorageKey).Msg("no se pudo borrar el adjunto del almacenamiento")
			}
		}
	}
	uc.cache.Invalidate(ctx, userID,
		cached.Customers, cached.Quotes, cached.Deals, cached.Activities, cached.Hotels,
		cached.Tickets, cached.Transactions, cached.Accounts, cached.Invoices, cached.Dashboard)
	return nil
}

// AddNote agrega una nota al cliente.
func (uc *CustomerUseCase) AddNote(ctx context.Context, userID, customerID string, in dto.NoteRequest) (*dto.NoteResponse, error) {
	if err := uc.ensureCustomer(ctx, userID, customerID); err != nil {
		return nil, err
	}
	n := &entity.Note{
		ID:         uuid.New().String(),
		UserID:     userID,
		CustomerID: customerID,
		Content:    strings.TrimSpace(in.Content),
		CreatedAt:  time.Now(),
	}
	if n.Content == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.notes.Create(ctx, n); err != nil {
		return nil, err
	}
	return toNoteResponse(n), nil
}

// ListNotes notas del cliente, más recientes primero.
func (uc *CustomerUseCase) ListNotes(ctx context.Context, userID, customerID string) ([]dto.NoteResponse, error) {
	list, err := uc.notes.ListByCustomer(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NoteResponse, 0, len(list))
	for _, n := range list {
		out = append(out, *toNoteResponse(n))
	}
	return out, nil
}

// DeleteNote borra una nota.
func (uc *CustomerUseCase) DeleteNote(ctx context.Context, userID, id string) error {
	return uc.notes.Delete(ctx, userID, id)
}

// UploadAttachment sube el archivo y guarda sus metadatos.
// Si la fila no se puede guardar, el objeto subido se borra.
func (uc *CustomerUseCase) UploadAttachment(ctx context.Context, userID, customerID, fileName, contentType string, size int64, body io.Reader) (*dto.AttachmentResponse, error) {
	if uc.storage == nil {
		return nil, domain.ErrStorageDisabled
	}
	if err := uc.ensureCustomer(ctx, userID, customerID); err != nil {
		return nil, err
	}
	fileName = path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, domain.ErrInvalidInput
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	id := uuid.New().String()
	a := &entity.Attachment{
		ID:          id,
		UserID:      userID,
		CustomerID:  customerID,
		FileName:    fileName,
		StorageKey:  fmt.Sprintf("customers/%s/%s-%s", customerID, id, fileName),
		ContentType: contentType,
		Size:        size,
		CreatedAt:   time.Now(),
	}
	if err := uc.storage.Upload(ctx, a.StorageKey, body, size, contentType); err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}
	if err := uc.attachments.Create(ctx, a); err != nil {
		if derr := uc.storage.Delete(ctx, a.StorageKey); derr != nil {
			log.Warn().Err(derr).Str("key", a.StorageKey).Msg("no se pudo borrar el objeto huérfano")
		}
		return nil, err
	}
	return uc.toAttachmentResponse(ctx, a), nil
}

// ListAttachments adjuntos del cliente con URL de descarga temporal.
func (uc *CustomerUseCase) ListAttachments(ctx context.Context, userID, customerID string) ([]dto.AttachmentResponse, error) {
	list, err := uc.attachments.ListByCustomer(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttachmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *uc.toAttachmentResponse(ctx, a))
	}
	return out, nil
}

// DeleteAttachment borra el objeto y la fila.
func (uc *CustomerUseCase) DeleteAttachment(ctx context.Context, userID, id string) error {
	a, err := uc.attachments.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	if uc.storage != nil {
		if err := uc.storage.Delete(ctx, a.StorageKey); err != nil {
			return fmt.Errorf("delete attachment object: %w", err)
		}
	}
	return uc.attachments.Delete(ctx, userID, id)
}

func (uc *CustomerUseCase) ensureCustomer(ctx context.Context, userID, customerID string) error {
	c, err := uc.repo.GetByID(ctx, userID, customerID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *CustomerUseCase) toAttachmentResponse(ctx context.Context, a *entity.Attachment) *dto.AttachmentResponse {
	out := &dto.AttachmentResponse{
		ID:          a.ID,
		CustomerID:  a.CustomerID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		Size:        a.Size,
		CreatedAt:   a.CreatedAt,
	}
	if uc.storage != nil {
		url, err := uc.storage.PresignedGetURL(ctx, a.StorageKey)
		if err != nil {
			log.Warn().Err(err).Str("key", a.StorageKey).Msg("presign attachment")
		}
		out.URL = url
	}
	return out
}

func applyCustomer(c *entity.Customer, in dto.CustomerRequest) {
	c.Type = in.Type
	if c.Type == "" {
		c.Type = entity.CustomerTypeIndividual
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = in.Phone
	c.TaxNumber = in.TaxNumber
	c.TaxOffice = in.TaxOffice
	c.Address = in.Address
	c.City = in.City
	c.Notes = in.Notes
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		Type:      c.Type,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		TaxNumber: c.TaxNumber,
		TaxOffice: c.TaxOffice,
		Address:   c.Address,
		City:      c.City,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{ID: n.ID, CustomerID: n.CustomerID, Content: n.Content, CreatedAt: n.CreatedAt}
}
