package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary (mes en curso).
type DashboardSummaryDTO struct {
	MonthIncome  decimal.Decimal `json:"month_income"`
	MonthExpense decimal.Decimal `json:"month_expense"`
	MonthNet     decimal.Decimal `json:"month_net"` // ingresos - egresos

	Receivables      decimal.Decimal `json:"receivables"` // facturas enviadas o vencidas
	OpenInvoiceCount int             `json:"open_invoice_count"`

	Tickets ProfitDTO `json:"tickets"`
	Hotels  ProfitDTO `json:"hotels"`

	// Metadatos del período
	DateLabel string `json:"date_label"` // ej: "Ekim 2026"
}

// ProfitDTO ventas y ganancia de un módulo de viajes.
type ProfitDTO struct {
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}
