package entity

import "time"

// Tipos de cliente.
const (
	CustomerTypeIndividual = "individual"
	CustomerTypeCorporate  = "corporate"
)

// Customer representa un cliente de la agencia (CRM y facturación).
type Customer struct {
	ID        string
	UserID    string
	Type      string // individual, corporate
	Name      string
	Email     string
	Phone     string
	TaxNumber string // TCKN o VKN
	TaxOffice string
	Address   string
	City      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
