package entity

import "time"

// CompanyProfile datos de la agencia que aparecen en facturas y cotizaciones.
// Existe como máximo uno por usuario.
type CompanyProfile struct {
	UserID    string
	Name      string
	TaxNumber string
	TaxOffice string
	Address   string
	Phone     string
	Email     string
	Website   string
	IBAN      string
	LogoKey   string // clave del logo en el almacenamiento de objetos (vacío = sin logo)
	CreatedAt time.Time
	UpdatedAt time.Time
}
