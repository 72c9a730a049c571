// Package pricing contiene los cálculos puros de precios: totales de líneas con impuesto
// (facturas y cotizaciones) y la resolución comisión/markup de reservas de hotel.
//
// Los cálculos trabajan en float64 sin redondear; el redondeo a 2 decimales ocurre al
// mostrar o persistir (ver Round2 y la conversión a decimal en los casos de uso).
package pricing

import "github.com/gkdnizduru/finans-proje/internal/domain"

// LineInput cantidad, precio unitario y tasa de impuesto (porcentaje 0–100) de una línea.
type LineInput struct {
	Quantity  float64
	UnitPrice float64
	TaxRate   float64
}

// LineResult montos calculados de una línea.
type LineResult struct {
	LineTotal      float64
	TaxAmount      float64
	SubtotalAmount float64
}

// Totals agregados de todas las líneas.
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
	Lines    []LineResult
}

// ValidateLine rechaza cantidad <= 0, precio negativo o tasa fuera de 0–100.
// Se ejecuta antes de calcular; CalculateLine nunca falla.
func ValidateLine(in LineInput) error {
	if in.Quantity <= 0 || in.UnitPrice < 0 || in.TaxRate < 0 || in.TaxRate > 100 {
		return domain.ErrInvalidInput
	}
	return nil
}

// CalculateLine calcula una línea.
//
// Precios sin impuesto:  raw = qty*price; tax = raw*rate/100; subtotal = raw; total = raw+tax.
// Precios con impuesto:  raw = qty*price; tax = raw - raw/(1+rate/100); subtotal = raw-tax; total = raw.
func CalculateLine(in LineInput, pricesIncludeTax bool) LineResult {
	raw := in.Quantity * in.UnitPrice
	rate := in.TaxRate / 100
	if pricesIncludeTax {
		tax := raw - raw/(1+rate)
		return LineResult{
			LineTotal:      raw,
			TaxAmount:      tax,
			SubtotalAmount: raw - tax,
		}
	}
	tax := raw * rate
	return LineResult{
		LineTotal:      raw + tax,
		TaxAmount:      tax,
		SubtotalAmount: raw,
	}
}

// CalculateTotals suma las tres magnitudes de todas las líneas, sin redondeo intermedio.
func CalculateTotals(items []LineInput, pricesIncludeTax bool) Totals {
	t := Totals{Lines: make([]LineResult, 0, len(items))}
	for _, it := range items {
		r := CalculateLine(it, pricesIncludeTax)
		t.Lines = append(t.Lines, r)
		t.Subtotal += r.SubtotalAmount
		t.Tax += r.TaxAmount
		t.Total += r.LineTotal
	}
	return t
}
