package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de billete.
const (
	TicketStatusReserved  = "reserved"
	TicketStatusIssued    = "issued"
	TicketStatusCancelled = "cancelled"
	TicketStatusRefunded  = "refunded"
)

// Tipos de pasajero.
const (
	PassengerAdult  = "adult"
	PassengerChild  = "child"
	PassengerInfant = "infant"
)

// Ticket emisión de billete aéreo con sus pasajeros y tramos.
// Profit = SellPrice - PurchasePrice.
type Ticket struct {
	ID            string
	UserID        string
	CustomerID    string
	AirlineID     *string
	PNR           string
	TicketNumber  string
	Status        string
	IssueDate     time.Time
	Currency      string
	PurchasePrice decimal.Decimal // costo neto pagado a la aerolínea/consolidador
	SellPrice     decimal.Decimal
	InvoiceID     *string
	Notes         string
	Passengers    []TicketPassenger
	Segments      []TicketSegment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TicketPassenger pasajero de un billete.
type TicketPassenger struct {
	ID            string
	TicketID      string
	FullName      string
	PassengerType string
	TicketNumber  string
	Position      int
}

// TicketSegment tramo de vuelo.
type TicketSegment struct {
	ID           string
	TicketID     string
	FlightNumber string
	Origin       string
	Destination  string
	DepartureAt  time.Time
	ArrivalAt    *time.Time
	Position     int
}

// Profit ganancia de la agencia sobre el billete.
func (t *Ticket) Profit() decimal.Decimal {
	return t.SellPrice.Sub(t.PurchasePrice)
}
