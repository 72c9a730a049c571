package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/pricing"
)

// Prefijos de numeración: INV-2026-0001, QUO-2026-0001.
const (
	InvoicePrefix = "INV"
	QuotePrefix   = "QUO"
)

const defaultCurrency = "TRY"

// PricedLine línea validada con importes redondeados a centavos.
type PricedLine struct {
	ProductID   *string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	LineTotal   decimal.Decimal
}

// PricedDocument totales de un documento. Los totales se suman en float sin redondeo
// intermedio y se redondean una sola vez.
type PricedDocument struct {
	Lines    []PricedLine
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Money redondea un importe calculado a 2 decimales.
func Money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(pricing.Round2(f)).Round(2)
}

// PriceItems valida las líneas y calcula sus importes con el calculador de impuestos.
func PriceItems(items []dto.DocumentItemRequest, pricesIncludeTax bool) (*PricedDocument, error) {
	inputs := make([]pricing.LineInput, 0, len(items))
	for i, it := range items {
		in := pricing.LineInput{
			Quantity:  it.Quantity.InexactFloat64(),
			UnitPrice: it.UnitPrice.InexactFloat64(),
			TaxRate:   it.TaxRate.InexactFloat64(),
		}
		if err := pricing.ValidateLine(in); err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		inputs = append(inputs, in)
	}
	totals := pricing.CalculateTotals(inputs, pricesIncludeTax)

	doc := &PricedDocument{
		Lines:    make([]PricedLine, 0, len(items)),
		Subtotal: Money(totals.Subtotal),
		Tax:      Money(totals.Tax),
		Total:    Money(totals.Total),
	}
	for i, it := range items {
		r := totals.Lines[i]
		doc.Lines = append(doc.Lines, PricedLine{
			ProductID:   it.ProductID,
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    Money(r.SubtotalAmount),
			TaxAmount:   Money(r.TaxAmount),
			LineTotal:   Money(r.LineTotal),
		})
	}
	return doc, nil
}

// PreviewLines calcula totales sin persistir (vista previa del formulario).
func PreviewLines(in dto.LinesPreviewRequest) (*dto.LinesPreviewResponse, error) {
	doc, err := PriceItems(in.Items, in.PricesIncludeTax)
	if err != nil {
		return nil, err
	}
	out := &dto.LinesPreviewResponse{
		Subtotal: doc.Subtotal,
		Tax:      doc.Tax,
		Total:    doc.Total,
		Lines:    make([]dto.LinePreviewDTO, 0, len(doc.Lines)),
	}
	for _, l := range doc.Lines {
		out.Lines = append(out.Lines, dto.LinePreviewDTO{
			SubtotalAmount: l.Subtotal,
			TaxAmount:      l.TaxAmount,
			LineTotal:      l.LineTotal,
		})
	}
	return out, nil
}

// sequenceSource devuelve la mayor secuencia usada (facturas o cotizaciones).
type sequenceSource interface {
	MaxSequence(ctx context.Context, userID, prefix string, year int) (int, error)
}

// NextNumber siguiente número del año: <prefijo>-<año>-<secuencia de 4 dígitos>.
// Parte de la mayor secuencia existente, así los huecos por borrado no repiten números.
func NextNumber(ctx context.Context, c sequenceSource, prefix, userID string, issueDate time.Time) (string, error) {
	n, err := c.MaxSequence(ctx, userID, prefix, issueDate.Year())
	if err != nil {
		return "", err
	}
	return FormatNumber(prefix, issueDate.Year(), n+1), nil
}

// FormatNumber INV-2026-0007.
func FormatNumber(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// NewPublicToken token opaco para el acceso público sin sesión.
func NewPublicToken() string {
	return uuid.New().String()
}

func currencyOr(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return defaultCurrency
	}
	return c
}

func requireItems(items []dto.DocumentItemRequest) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: el documento necesita al menos una línea", domain.ErrInvalidInput)
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
