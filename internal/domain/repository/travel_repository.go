package repository

import (
	"context"

	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

// TicketFilter filtros de billetes.
type TicketFilter struct {
	CustomerID string
	Status     string
	Search     string // PNR o número de billete
	Limit      int
	Offset     int
}

// TicketRepository billetes con pasajeros y tramos.
type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	Update(ctx context.Context, ticket *entity.Ticket) error
	// ReplaceChildren borra y vuelve a insertar pasajeros y tramos del billete.
	ReplaceChildren(ctx context.Context, ticket *entity.Ticket) error
	SetInvoice(ctx context.Context, userID, id, invoiceID string) error
	// GetByID devuelve el billete con Passengers y Segments cargados.
	GetByID(ctx context.Context, userID, id string) (*entity.Ticket, error)
	List(ctx context.Context, userID string, f TicketFilter) ([]*entity.Ticket, int, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteByCustomer(ctx context.Context, userID, customerID string) error
}

// HotelFilter filtros de reservas.
type HotelFilter struct {
	CustomerID string
	Status     string
	Limit      int
	Offset     int
}

// HotelReservationRepository reservas de hotel.
type HotelReservationRepository interface {
	Create(ctx context.Context, r *entity.HotelReservation) error
	Update(ctx context.Context, r *entity.HotelReservation) error
	GetByID(ctx context.Context, userID, id string) (*entity.HotelReservation, error)
	List(ctx context.Context, userID string, f HotelFilter) ([]*entity.HotelReservation, int, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteByCustomer(ctx context.Context, userID, customerID string) error
}
