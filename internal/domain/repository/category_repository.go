package repository

import (
	"context"

	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, userID, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// List filtra por tipo si typ no es vacío.
	List(ctx context.Context, userID, typ string) ([]*entity.Category, error)
	Delete(ctx context.Context, userID, id string) error
}

// AirlineRepository aerolíneas del usuario.
type AirlineRepository interface {
	Create(ctx context.Context, airline *entity.Airline) error
	GetByID(ctx context.Context, userID, id string) (*entity.Airline, error)
	Update(ctx context.Context, airline *entity.Airline) error
	List(ctx context.Context, userID string) ([]*entity.Airline, error)
	Delete(ctx context.Context, userID, id string) error
}
