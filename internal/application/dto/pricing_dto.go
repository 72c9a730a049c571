package dto

import "github.com/shopspring/decimal"

// LinesPreviewRequest vista previa de totales sin persistir.
type LinesPreviewRequest struct {
	PricesIncludeTax bool                  `json:"prices_include_tax"`
	Items            []DocumentItemRequest `json:"items" validate:"dive"`
}

// LinePreviewDTO montos redondeados de una línea.
type LinePreviewDTO struct {
	SubtotalAmount decimal.Decimal `json:"subtotal_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// LinesPreviewResponse totales del documento.
type LinesPreviewResponse struct {
	Subtotal decimal.Decimal  `json:"subtotal"`
	Tax      decimal.Decimal  `json:"tax"`
	Total    decimal.Decimal  `json:"total"`
	Lines    []LinePreviewDTO `json:"lines"`
}

// CommissionPreviewRequest entrada del resolvedor comisión/markup.
type CommissionPreviewRequest struct {
	PricingMode    string           `json:"pricing_mode" validate:"required,oneof=markup commission"`
	SellPrice      decimal.Decimal  `json:"sell_price" validate:"gte=0"`
	CommissionRate *decimal.Decimal `json:"commission_rate" validate:"omitempty,gte=0,lte=100"`
	NetPrice       decimal.Decimal  `json:"net_price" validate:"gte=0"`
}

// CommissionPreviewResponse neto y ganancia resultantes.
type CommissionPreviewResponse struct {
	PricingMode string          `json:"pricing_mode"`
	NetPrice    decimal.Decimal `json:"net_price"`
	Profit      decimal.Decimal `json:"profit"`
	NetReadOnly bool            `json:"net_read_only"`
}
