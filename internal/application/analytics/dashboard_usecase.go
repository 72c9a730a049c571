// Package analytics contiene el resumen del dashboard: flujo de caja del mes, cuentas por
// cobrar y ganancia de billetes y hoteles.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gkdnizduru/finans-proje/internal/application/cached"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

// DashboardUseCase genera el resumen del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         *cached.Reader
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, cache *cached.Reader) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, cache: cache, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO del usuario.
//
// Cuatro llamadas en paralelo:
//  1. GetCashFlow(mes)      → ingresos, egresos, neto
//  2. GetReceivables        → facturas abiertas
//  3. GetTicketProfit(mes)  → billetes
//  4. GetHotelProfit(mes)   → hoteles
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	key := cached.Key(userID, cached.Dashboard, now.Format("2006-01"))
	return cached.Load(ctx, uc.cache, key, func(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
		return uc.summary(ctx, userID, now)
	})
}

func (uc *DashboardUseCase) summary(ctx context.Context, userID string, now time.Time) (*dto.DashboardSummaryDTO, error) {
	// Mes en curso: [día 1 00:00, día 1 del mes siguiente)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	type cashResult struct {
		income  decimal.Decimal
		expense decimal.Decimal
		err     error
	}
	type receivablesResult struct {
		total decimal.Decimal
		count int
		err   error
	}
	type profitResult struct {
		summary repository.ProfitSummary
		err     error
	}

	cashCh := make(chan cashResult, 1)
	recvCh := make(chan receivablesResult, 1)
	ticketsCh := make(chan profitResult, 1)
	hotelsCh := make(chan profitResult, 1)

	go func() {
		in, out, err := uc.analyticsRepo.GetCashFlow(ctx, userID, monthStart, monthEnd)
		cashCh <- cashResult{in, out, err}
	}()
	go func() {
		total, count, err := uc.analyticsRepo.GetReceivables(ctx, userID)
		recvCh <- receivablesResult{total, count, err}
	}()
	go func() {
		s, err := uc.analyticsRepo.GetTicketProfit(ctx, userID, monthStart, monthEnd)
		ticketsCh <- profitResult{s, err}
	}()
	go func() {
		s, err := uc.analyticsRepo.GetHotelProfit(ctx, userID, monthStart, monthEnd)
		hotelsCh <- profitResult{s, err}
	}()

	cash := <-cashCh
	recv := <-recvCh
	tickets := <-ticketsCh
	hotels := <-hotelsCh

	if cash.err != nil {
		return nil, fmt.Errorf("dashboard: flujo de caja: %w", cash.err)
	}
	if recv.err != nil {
		return nil, fmt.Errorf("dashboard: cuentas por cobrar: %w", recv.err)
	}
	if tickets.err != nil {
		return nil, fmt.Errorf("dashboard: billetes: %w", tickets.err)
	}
	if hotels.err != nil {
		return nil, fmt.Errorf("dashboard: hoteles: %w", hotels.err)
	}

	return &dto.DashboardSummaryDTO{
		MonthIncome:      cash.income.Round(2),
		MonthExpense:     cash.expense.Round(2),
		MonthNet:         cash.income.Sub(cash.expense).Round(2),
		Receivables:      recv.total.Round(2),
		OpenInvoiceCount: recv.count,
		Tickets:          toProfitDTO(tickets.summary),
		Hotels:           toProfitDTO(hotels.summary),
		DateLabel:        monthLabel(now),
	}, nil
}

func toProfitDTO(s repository.ProfitSummary) dto.ProfitDTO {
	return dto.ProfitDTO{Count: s.Count, Revenue: s.Revenue.Round(2), Profit: s.Profit.Round(2)}
}

// monthLabel etiqueta legible del mes, ej: "Ekim 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
		"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
