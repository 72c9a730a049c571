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

var _ repository.HotelReservationRepository = (*HotelReservationRepo)(nil)

// HotelReservationRepo reservas de hotel.
type HotelReservationRepo struct {
	q Querier
}

// NewHotelReservationRepository construye el adaptador.
func NewHotelReservationRepository(q Querier) *HotelReservationRepo {
	return &HotelReservationRepo{q: q}
}

const hotelColumns = `id, user_id, customer_id, hotel_name, city, room_type, board_type, check_in, check_out, guests,
	pricing_mode, currency, sell_price, commission_rate, net_price, profit, status, voucher_number, notes,
	created_at, updated_at`

func scanHotel(row pgx.Row) (*entity.HotelReservation, error) {
	var h entity.HotelReservation
	if err := row.Scan(&h.ID, &h.UserID, &h.CustomerID, &h.HotelName, &h.City, &h.RoomType, &h.BoardType,
		&h.CheckIn, &h.CheckOut, &h.Guests, &h.PricingMode, &h.Currency, &h.SellPrice, &h.CommissionRate,
		&h.NetPrice, &h.Profit, &h.Status, &h.VoucherNumber, &h.Notes, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HotelReservationRepo) Create(ctx context.Context, h *entity.HotelReservation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO hotel_reservations (`+hotelColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		h.ID, h.UserID, h.CustomerID, h.HotelName, h.City, h.RoomType, h.BoardType, h.CheckIn, h.CheckOut,
		h.Guests, h.PricingMode, h.Currency, h.SellPrice, h.CommissionRate, h.NetPrice, h.Profit, h.Status,
		h.VoucherNumber, h.Notes, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert hotel reservation: %w", err)
	}
	return nil
}

func (r *HotelReservationRepo) Update(ctx context.Context, h *entity.HotelReservation) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE hotel_reservations SET customer_id = $3, hotel_name = $4, city = $5, room_type = $6,
		       board_type = $7, check_in = $8, check_out = $9, guests = $10, pricing_mode = $11, currency = $12,
		       sell_price = $13, commission_rate = $14, net_price = $15, profit = $16, status = $17,
		       voucher_number = $18, notes = $19, updated_at = $20
		WHERE user_id = $1 AND id = $2`,
		h.UserID, h.ID, h.CustomerID, h.HotelName, h.City, h.RoomType, h.BoardType, h.CheckIn, h.CheckOut,
		h.Guests, h.PricingMode, h.Currency, h.SellPrice, h.CommissionRate, h.NetPrice, h.Profit, h.Status,
		h.VoucherNumber, h.Notes, h.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update hotel reservation: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

func (r *HotelReservationRepo) GetByID(ctx context.Context, userID, id string) (*entity.HotelReservation, error) {
	h, err := scanHotel(r.q.QueryRow(ctx,
		`SELECT `+hotelColumns+` FROM hotel_reservations WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hotel reservation: %w", err)
	}
	return h, nil
}

func (r *HotelReservationRepo) List(ctx context.Context, userID string, f repository.HotelFilter) ([]*entity.HotelReservation, int, error) {
	w := newWhere(userID)
	w.addIf(f.CustomerID != "", "customer_id = $%d", f.CustomerID)
	w.addIf(f.Status != "", "status = $%d", f.Status)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM hotel_reservations`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count hotel reservations: %w", err)
	}
	query := `SELECT ` + hotelColumns + ` FROM hotel_reservations` + w.sql() +
		` ORDER BY check_in DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list hotel reservations: %w", err)
	}
	defer rows.Close()
	var list []*entity.HotelReservation
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan hotel reservation: %w", err)
		}
		list = append(list, h)
	}
	return list, total, rows.Err()
}

func (r *HotelReservationRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM hotel_reservations WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete hotel reservation: %w", err)
	}
	return expectOne(tag, domain.ErrNotFound)
}

func (r *HotelReservationRepo) DeleteByCustomer(ctx context.Context, userID, customerID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM hotel_reservations WHERE user_id = $1 AND customer_id = $2`, userID, customerID); err != nil {
		return fmt.Errorf("delete customer hotel reservations: %w", err)
	}
	return nil
}
