package repository

import (
	"context"
	"time"

	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

// AccountRepository cajas y cuentas. GetByID y List completan Balance.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, userID, id string) (*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	List(ctx context.Context, userID string) ([]*entity.Account, error)
	Delete(ctx context.Context, userID, id string) error
}

// TransactionFilter filtros de movimientos; campos vacíos no filtran.
type TransactionFilter struct {
	Type       string
	AccountID  string
	CategoryID string
	CustomerID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// TransactionRepository movimientos financieros.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, userID, id string) (*entity.Transaction, error)
	Update(ctx context.Context, tx *entity.Transaction) error
	List(ctx context.Context, userID string, f TransactionFilter) ([]*entity.Transaction, int, error)
	Delete(ctx context.Context, userID, id string) error
	// DetachCustomer pone customer_id e invoice_id a NULL en los movimientos del cliente
	// y en los vinculados a sus facturas.
	DetachCustomer(ctx context.Context, userID, customerID string) error
}
