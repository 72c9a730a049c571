package entity

import "time"

// Airline aerolínea con la que trabaja la agencia.
type Airline struct {
	ID        string
	UserID    string
	Name      string
	Code      string // código IATA (TK, PC, VF...)
	CreatedAt time.Time
	UpdatedAt time.Time
}
