package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gkdnizduru/finans-proje/internal/application/billing"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
)

// PublicHandler enlaces públicos de facturas y cotizaciones (sin JWT).
type PublicHandler struct {
	uc *billing.PublicUseCase
}

func NewPublicHandler(uc *billing.PublicUseCase) *PublicHandler {
	return &PublicHandler{uc: uc}
}

// GetInvoice godoc
// @Summary      Factura pública
// @Tags         public
// @Produce      json
// @Param        token  path  string  true  "Token público"
// @Success      200    {object}  dto.PublicDocumentResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/public/invoices/{token} [get]
func (h *PublicHandler) GetInvoice(c *fiber.Ctx) error {
	out, err := h.uc.GetInvoice(c.Context(), c.Params("token"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *PublicHandler) GetQuote(c *fiber.Ctx) error {
	out, err := h.uc.GetQuote(c.Context(), c.Params("token"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RespondQuote godoc
// @Summary      Aceptar o rechazar cotización
// @Tags         public
// @Accept       json
// @Param        token  path  string                        true  "Token público"
// @Param        body   body  dto.PublicQuoteStatusRequest  true  "accepted | rejected"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/public/quotes/{token}/status [post]
func (h *PublicHandler) RespondQuote(c *fiber.Ctx) error {
	var in dto.PublicQuoteStatusRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.RespondQuote(c.Context(), c.Params("token"), in.Status); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
