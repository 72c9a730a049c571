package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gkdnizduru/finans-proje/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.TxRepos{
		Customers:    NewCustomerRepository(tx),
		Notes:        NewNoteRepository(tx),
		Attachments:  NewAttachmentRepository(tx),
		Deals:        NewDealRepository(tx),
		Activities:   NewActivityRepository(tx),
		Transactions: NewTransactionRepository(tx),
		Invoices:     NewInvoiceRepository(tx),
		Quotes:       NewQuoteRepository(tx),
		Tickets:      NewTicketRepository(tx),
		Hotels:       NewHotelReservationRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
