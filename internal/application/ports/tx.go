package ports

import (
	"context"

	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Customers    repository.CustomerRepository
	Notes        repository.NoteRepository
	Attachments  repository.AttachmentRepository
	Deals        repository.DealRepository
	Activities   repository.ActivityRepository
	Transactions repository.TransactionRepository
	Invoices     repository.InvoiceRepository
	Quotes       repository.QuoteRepository
	Tickets      repository.TicketRepository
	Hotels       repository.HotelReservationRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
