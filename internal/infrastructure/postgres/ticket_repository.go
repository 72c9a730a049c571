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

var _ repository.TicketRepository = (*TicketRepo)(nil)

// TicketRepo billetes con pasajeros y tramos. Las escrituras de varias tablas deben
// hacerse con un Querier transaccional (TxRunner).
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador.
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

const ticketColumns = `id, user_id, customer_id, airline_id, pnr, ticket_number, status, issue_date, currency,
	purchase_price, sell_price, invoice_id, notes, created_at, updated_at`

func scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var t entity.Ticket
	if err := row.Scan(&t.ID, &t.UserID, &t.CustomerID, &t.AirlineID, &t.PNR, &t.TicketNumber, &t.Status,
		&t.IssueDate, &t.Currency, &t.PurchasePrice, &t.SellPrice, &t.InvoiceID, &t.Notes, &t.CreatedAt,
		&t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserta cabecera, pasajeros y tramos.
func (r *TicketRepo) Create(ctx context.Context, t *entity.Ticket) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO tickets (`+ticketColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		t.ID, t.UserID, t.CustomerID, t.AirlineID, t.PNR, t.TicketNumber, t.Status, t.IssueDate, t.Currency,
		t.PurchasePrice, t.SellPrice, t.InvoiceID, t.Notes, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert ticket: %w", err)
	}
	return r.insertChildren(ctx, t)
}

func (r *TicketRepo) insertChildren(ctx context.Context, t *entity.Ticket) error {
	for i := range t.Passengers {
		p := &t.Passengers[i]
		p.TicketID = t.ID
		if _, err := r.q.Exec(ctx, `
			INSERT INTO ticket_passengers (id, ticket_id, full_name, passenger_type, ticket_number, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			p.ID, p.TicketID, p.FullName, p.PassengerType, p.TicketNumber, p.Position,
		); err != nil {
			return fmt.Errorf("insert ticket passenger: %w", err)
		}
	}
	for i := range t.Segments {
		s := &t.Segments[i]
		s.TicketID = t.ID
		if _, err := r.q.Exec(ctx, `
			INSERT INTO ticket_segments (id, ticket_id, flight_number, origin, destination, departure_at, arrival_at, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			s.ID, s.TicketID, s.FlightNumber, s.Origin, s.Destination, s.DepartureAt, s.ArrivalAt, s.Position,
		); err != nil {
			return fmt.Errorf("insert ticket segment: %w", err)
		}
	}
	return nil
}

// Update reescribe la cabecera (no toca invoice_id).
func (r *TicketRepo) Update(ctx context.Context, t *entity.Ticket) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE tickets SET customer_id = $3, airline_id = $4, pnr = $5, ticket_number = $6, status = $7,
		       issue_date = $8, currency = $9, purchase_price = $10, sell_price = $11, notes = $12, updated_at = $13
		WHERE user_id = $1 AND id = $2`,
		t.UserID, t.ID, t.CustomerID, t.AirlineID, t.PNR, t.TicketNumber, t.Status, t.IssueDate, t.Currency,
		t.PurchasePrice, t.SellPrice, t.Notes, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update ticket: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

// ReplaceChildren borra y vuelve a insertar pasajeros y tramos.
func (r *TicketRepo) ReplaceChildren(ctx context.Context, t *entity.Ticket) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM ticket_passengers WHERE ticket_id = $1`, t.ID); err != nil {
		return fmt.Errorf("delete ticket passengers: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM ticket_segments WHERE ticket_id = $1`, t.ID); err != nil {
		return fmt.Errorf("delete ticket segments: %w", err)
	}
	return r.insertChildren(ctx, t)
}

// SetInvoice vincula el billete a su factura; si ya tenía una devuelve ErrConflict.
func (r *TicketRepo) SetInvoice(ctx context.Context, userID, id, invoiceID string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE tickets SET invoice_id = $3, updated_at = now()
		WHERE user_id = $1 AND id = $2 AND invoice_id IS NULL`, userID, id, invoiceID)
	if err != nil {
		return fmt.Errorf("set ticket invoice: %w", err)
	}
	return expectOne(tag, domain.ErrConflict)
}

// GetByID carga el billete con pasajeros y tramos.
func (r *TicketRepo) GetByID(ctx context.Context, userID, id string) (*entity.Ticket, error) {
	t, err := scanTicket(r.q.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if err := r.loadChildren(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TicketRepo) loadChildren(ctx context.Context, t *entity.Ticket) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, ticket_id, full_name, passenger_type, ticket_number, position
		FROM ticket_passengers WHERE ticket_id = $1 ORDER BY position`, t.ID)
	if err != nil {
		return fmt.Errorf("list ticket passengers: %w", err)
	}
	for rows.Next() {
		var p entity.TicketPassenger
		if err := rows.Scan(&p.ID, &p.TicketID, &p.FullName, &p.PassengerType, &p.TicketNumber, &p.Position); err != nil {
			rows.Close()
			return fmt.Errorf("scan ticket passenger: %w", err)
		}
		t.Passengers = append(t.Passengers, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, ticket_id, flight_number, origin, destination, departure_at, arrival_at, position
		FROM ticket_segments WHERE ticket_id = $1 ORDER BY position`, t.ID)
	if err != nil {
		return fmt.Errorf("list ticket segments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s entity.TicketSegment
		if err := rows.Scan(&s.ID, &s.TicketID, &s.FlightNumber, &s.Origin, &s.Destination, &s.DepartureAt,
			&s.ArrivalAt, &s.Position); err != nil {
			return fmt.Errorf("scan ticket segment: %w", err)
		}
		t.Segments = append(t.Segments, s)
	}
	return rows.Err()
}

// List devuelve cabeceras (sin pasajeros ni tramos).
func (r *TicketRepo) List(ctx context.Context, userID string, f repository.TicketFilter) ([]*entity.Ticket, int, error) {
	w := newWhere(userID)
	w.addIf(f.CustomerID != "", "customer_id = $%d", f.CustomerID)
	w.addIf(f.Status != "", "status = $%d", f.Status)
	w.addIf(f.Search != "", "(pnr ILIKE $%[1]d OR ticket_number ILIKE $%[1]d)", "%"+f.Search+"%")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tickets: %w", err)
	}
	query := `SELECT ` + ticketColumns + ` FROM tickets` + w.sql() +
		` ORDER BY issue_date DESC, created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan ticket: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// Delete borra pasajeros, tramos y el billete.
func (r *TicketRepo) Delete(ctx context.Context, userID, id string) error {
	if err := r.deleteChildren(ctx, `SELECT id FROM tickets WHERE user_id = $1 AND id = $2`, userID, id); err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM tickets WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

// DeleteByCustomer borra todos los billetes del cliente con sus hijos.
func (r *TicketRepo) DeleteByCustomer(ctx context.Context, userID, customerID string) error {
	if err := r.deleteChildren(ctx, `SELECT id FROM tickets WHERE user_id = $1 AND customer_id = $2`, userID, customerID); err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM tickets WHERE user_id = $1 AND customer_id = $2`, userID, customerID); err != nil {
		return fmt.Errorf("delete customer tickets: %w", err)
	}
	return nil
}

func (r *TicketRepo) deleteChildren(ctx context.Context, idsQuery string, args ...any) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM ticket_passengers WHERE ticket_id IN (`+idsQuery+`)`, args...); err != nil {
		return fmt.Errorf("delete ticket passengers: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM ticket_segments WHERE ticket_id IN (`+idsQuery+`)`, args...); err != nil {
		return fmt.Errorf("delete ticket segments: %w", err)
	}
	return nil
}
