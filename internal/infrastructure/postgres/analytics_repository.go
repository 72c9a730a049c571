package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetCashFlow ingresos y egresos del período. COALESCE devuelve cero sin movimientos.
func (r *AnalyticsRepo) GetCashFlow(ctx context.Context, userID string, from, to time.Time) (income, expense decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(amount) FILTER (WHERE type = 'income'),  0) AS income,
	    COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS expense
	FROM transactions
	WHERE user_id = $1
	  AND date >= $2 AND date < $3`

	if err = r.q.QueryRow(ctx, query, userID, from, to).Scan(&income, &expense); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("analytics.GetCashFlow: %w", err)
	}
	return income, expense, nil
}

// GetReceivables facturas enviadas o vencidas pendientes de cobro.
func (r *AnalyticsRepo) GetReceivables(ctx context.Context, userID string) (decimal.Decimal, int, error) {
	const query = `
	SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
	FROM invoices
	WHERE user_id = $1
	  AND status IN ('sent', 'overdue')`

	var total decimal.Decimal
	var count int
	if err := r.q.QueryRow(ctx, query, userID).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.GetReceivables: %w", err)
	}
	return total, count, nil
}

// GetTicketProfit ganancia = venta - compra, excluyendo cancelados y reembolsados.
func (r *AnalyticsRepo) GetTicketProfit(ctx context.Context, userID string, from, to time.Time) (repository.ProfitSummary, error) {
	const query = `
	SELECT COUNT(*),
	       COALESCE(SUM(sell_price), 0),
	       COALESCE(SUM(sell_price - purchase_price), 0)
	FROM tickets
	WHERE user_id = $1
	  AND issue_date >= $2 AND issue_date < $3
	  AND status NOT IN ('cancelled', 'refunded')`

	var s repository.ProfitSummary
	if err := r.q.QueryRow(ctx, query, userID, from, to).Scan(&s.Count, &s.Revenue, &s.Profit); err != nil {
		return repository.ProfitSummary{}, fmt.Errorf("analytics.GetTicketProfit: %w", err)
	}
	return s, nil
}

// GetHotelProfit usa la ganancia guardada por reserva (comisión) o venta - neto (markup).
func (r *AnalyticsRepo) GetHotelProfit(ctx context.Context, userID string, from, to time.Time) (repository.ProfitSummary, error) {
	const query = `
	SELECT COUNT(*),
	       COALESCE(SUM(sell_price), 0),
	       COALESCE(SUM(CASE WHEN pricing_mode = 'commission' THEN profit ELSE sell_price - net_price END), 0)
	FROM hotel_reservations
	WHERE user_id = $1
	  AND check_in >= $2 AND check_in < $3
	  AND status <> 'cancelled'`

	var s repository.ProfitSummary
	if err := r.q.QueryRow(ctx, query, userID, from, to).Scan(&s.Count, &s.Revenue, &s.Profit); err != nil {
		return repository.ProfitSummary{}, fmt.Errorf("analytics.GetHotelProfit: %w", err)
	}
	return s, nil
}
