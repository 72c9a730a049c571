package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product servicio o producto que se ofrece en facturas y cotizaciones.
type Product struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Unit        string          // adet, kişi, gece...
	UnitPrice   decimal.Decimal // precio de venta por defecto
	TaxRate     decimal.Decimal // porcentaje 0–100
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
