package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PassengerDTO pasajero de un billete.
type PassengerDTO struct {
	FullName      string `json:"full_name" validate:"required,min=1,max=200"`
	PassengerType string `json:"passenger_type" validate:"omitempty,oneof=adult child infant"`
	TicketNumber  string `json:"ticket_number" validate:"omitempty,max=20"`
}

// SegmentDTO tramo de vuelo.
type SegmentDTO struct {
	FlightNumber string     `json:"flight_number" validate:"omitempty,max=10"`
	Origin       string     `json:"origin" validate:"required,len=3"`
	Destination  string     `json:"destination" validate:"required,len=3"`
	DepartureAt  time.Time  `json:"departure_at" validate:"required"`
	ArrivalAt    *time.Time `json:"arrival_at"`
}

// TicketRequest crear o reemplazar un billete con pasajeros y tramos.
type TicketRequest struct {
	CustomerID    string          `json:"customer_id" validate:"required,uuid"`
	AirlineID     *string         `json:"airline_id" validate:"omitempty,uuid"`
	PNR           string          `json:"pnr" validate:"omitempty,max=10"`
	TicketNumber  string          `json:"ticket_number" validate:"omitempty,max=20"`
	Status        string          `json:"status" validate:"omitempty,oneof=reserved issued cancelled refunded"`
	IssueDate     time.Time       `json:"issue_date" validate:"required"`
	Currency      string          `json:"currency" validate:"omitempty,len=3"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"gte=0"`
	SellPrice     decimal.Decimal `json:"sell_price" validate:"gte=0"`
	Notes         string          `json:"notes" validate:"omitempty,max=2000"`
	Passengers    []PassengerDTO  `json:"passengers" validate:"required,min=1,dive"`
	Segments      []SegmentDTO    `json:"segments" validate:"omitempty,dive"`
}

// TicketResponse billete con ganancia calculada.
type TicketResponse struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	AirlineID     *string         `json:"airline_id,omitempty"`
	PNR           string          `json:"pnr"`
	TicketNumber  string          `json:"ticket_number"`
	Status        string          `json:"status"`
	IssueDate     time.Time       `json:"issue_date"`
	Currency      string          `json:"currency"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	Profit        decimal.Decimal `json:"profit"`
	InvoiceID     *string         `json:"invoice_id,omitempty"`
	Notes         string          `json:"notes"`
	Passengers    []PassengerDTO  `json:"passengers,omitempty"`
	Segments      []SegmentDTO    `json:"segments,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TicketListResponse lista paginada de billetes.
type TicketListResponse struct {
	Items []TicketResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// TicketInvoiceRequest opciones de facturación de un billete.
// PricesIncludeTax nil = true (el precio de venta ya incluye impuesto).
type TicketInvoiceRequest struct {
	TaxRate          decimal.Decimal `json:"tax_rate" validate:"gte=0,lte=100"`
	PricesIncludeTax *bool           `json:"prices_include_tax"`
	DueDate          *time.Time      `json:"due_date"`
}

// ParsePNRRequest texto libre pegado desde el sistema de reservas.
type ParsePNRRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// PNRPrefillResponse borrador editable; no se guarda.
type PNRPrefillResponse struct {
	PassengerName string    `json:"passenger_name"`
	TicketNumber  string    `json:"ticket_number"`
	PNR           string    `json:"pnr"`
	Airline       string    `json:"airline"`
	AirlineID     *string   `json:"airline_id,omitempty"`
	FlightNumber  string    `json:"flight_number"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	FlightDate    time.Time `json:"flight_date"`
}

// HotelReservationRequest crear o actualizar una reserva.
// En modo comisión NetPrice se ignora y se deriva de la tasa.
type HotelReservationRequest struct {
	CustomerID     string           `json:"customer_id" validate:"required,uuid"`
	HotelName      string           `json:"hotel_name" validate:"required,min=1,max=200"`
	City           string           `json:"city" validate:"omitempty,max=100"`
	RoomType       string           `json:"room_type" validate:"omitempty,max=100"`
	BoardType      string           `json:"board_type" validate:"omitempty,max=50"`
	CheckIn        time.Time        `json:"check_in" validate:"required"`
	CheckOut       time.Time        `json:"check_out" validate:"required,gtfield=CheckIn"`
	Guests         int              `json:"guests" validate:"min=1,max=50"`
	PricingMode    string           `json:"pricing_mode" validate:"required,oneof=markup commission"`
	Currency       string           `json:"currency" validate:"omitempty,len=3"`
	SellPrice      decimal.Decimal  `json:"sell_price" validate:"gte=0"`
	CommissionRate *decimal.Decimal `json:"commission_rate" validate:"omitempty,gte=0,lte=100"`
	NetPrice       decimal.Decimal  `json:"net_price" validate:"gte=0"`
	Status         string           `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
	VoucherNumber  string           `json:"voucher_number" validate:"omitempty,max=50"`
	Notes          string           `json:"notes" validate:"omitempty,max=2000"`
}

// HotelReservationResponse salida de una reserva.
type HotelReservationResponse struct {
	ID             string           `json:"id"`
	CustomerID     string           `json:"customer_id"`
	HotelName      string           `json:"hotel_name"`
	City           string           `json:"city"`
	RoomType       string           `json:"room_type"`
	BoardType      string           `json:"board_type"`
	CheckIn        time.Time        `json:"check_in"`
	CheckOut       time.Time        `json:"check_out"`
	Nights         int              `json:"nights"`
	Guests         int              `json:"guests"`
	PricingMode    string           `json:"pricing_mode"`
	Currency       string           `json:"currency"`
	SellPrice      decimal.Decimal  `json:"sell_price"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
	NetPrice       decimal.Decimal  `json:"net_price"`
	Profit         decimal.Decimal  `json:"profit"`
	Status         string           `json:"status"`
	VoucherNumber  string           `json:"voucher_number"`
	Notes          string           `json:"notes"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// HotelReservationListResponse lista paginada de reservas.
type HotelReservationListResponse struct {
	Items []HotelReservationResponse `json:"items"`
	Page  PageResponse               `json:"page"`
}
