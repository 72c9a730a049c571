package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gkdnizduru/finans-proje/internal/application/billing"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/application/travel"
)

// PricingHandler vistas previas de cálculo para los formularios; no persiste nada.
type PricingHandler struct{}

func NewPricingHandler() *PricingHandler {
	return &PricingHandler{}
}

// Lines godoc
// @Summary      Calcular líneas y totales
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LinesPreviewRequest  true  "Líneas y modo de precios"
// @Success      200   {object}  dto.LinesPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/lines [post]
func (h *PricingHandler) Lines(c *fiber.Ctx) error {
	var in dto.LinesPreviewRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := billing.PreviewLines(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Commission godoc
// @Summary      Resolver comisión o markup
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommissionPreviewRequest  true  "Modo, venta, tasa o neto"
// @Success      200   {object}  dto.CommissionPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/commission [post]
func (h *PricingHandler) Commission(c *fiber.Ctx) error {
	var in dto.CommissionPreviewRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := travel.CommissionPreview(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
