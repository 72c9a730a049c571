package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProfitSummary ganancia agregada de un módulo de viajes.
type ProfitSummary struct {
	Count   int
	Revenue decimal.Decimal
	Profit  decimal.Decimal
}

// AnalyticsRepository consultas de lectura del dashboard. Read-only.
type AnalyticsRepository interface {
	// GetCashFlow suma ingresos y egresos de transacciones en [from, to).
	GetCashFlow(ctx context.Context, userID string, from, to time.Time) (income, expense decimal.Decimal, err error)

	// GetReceivables total y cantidad de facturas abiertas (sent/overdue).
	GetReceivables(ctx context.Context, userID string) (total decimal.Decimal, count int, err error)

	// GetTicketProfit ventas y ganancia de billetes emitidos en [from, to), sin cancelados ni reembolsados.
	GetTicketProfit(ctx context.Context, userID string, from, to time.Time) (ProfitSummary, error)

	// GetHotelProfit ventas y ganancia de reservas con check-in en [from, to), sin canceladas.
	GetHotelProfit(ctx context.Context, userID string, from, to time.Time) (ProfitSummary, error)
}
