package repository

import (
	"context"

	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

// DealFilter filtros del embudo.
type DealFilter struct {
	CustomerID string
	Stage      string
	Limit      int
	Offset     int
}

// DealRepository oportunidades de venta.
type DealRepository interface {
	Create(ctx context.Context, deal *entity.Deal) error
	GetByID(ctx context.Context, userID, id string) (*entity.Deal, error)
	List(ctx context.Context, userID string, f DealFilter) ([]*entity.Deal, error)
	Update(ctx context.Context, deal *entity.Deal) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByCustomer(ctx context.Context, userID, customerID string) error
}

// ActivityFilter filtros de actividades.
type ActivityFilter struct {
	CustomerID string
	DealID     string
	Completed  *bool
	Limit      int
	Offset     int
}

// ActivityRepository seguimiento comercial.
type ActivityRepository interface {
	Create(ctx context.Context, a *entity.Activity) error
	GetByID(ctx context.Context, userID, id string) (*entity.Activity, error)
	List(ctx context.Context, userID string, f ActivityFilter) ([]*entity.Activity, error)
	Update(ctx context.Context, a *entity.Activity) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByCustomer(ctx context.Context, userID, customerID string) error
}
