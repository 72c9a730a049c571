package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modos de precio de una reserva de hotel.
const (
	PricingModeMarkup     = "markup"
	PricingModeCommission = "commission"
)

// Estados de reserva.
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

// HotelReservation reserva de hotel con precio por comisión o por markup.
type HotelReservation struct {
	ID             string
	UserID         string
	CustomerID     string
	HotelName      string
	City           string
	RoomType       string
	BoardType      string
	CheckIn        time.Time
	CheckOut       time.Time
	Guests         int
	PricingMode    string
	Currency       string
	SellPrice      decimal.Decimal
	CommissionRate *decimal.Decimal // solo en modo comisión
	NetPrice       decimal.Decimal  // monto adeudado al proveedor
	Profit         decimal.Decimal
	Status         string
	VoucherNumber  string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Nights número de noches de la estancia.
func (h *HotelReservation) Nights() int {
	d := h.CheckOut.Sub(h.CheckIn)
	if d <= 0 {
		return 0
	}
	return int(d.Hours() / 24)
}
