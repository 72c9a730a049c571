package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/application/travel"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

// TicketHandler billetes aéreos, lectura de PNR y facturación.
type TicketHandler struct {
	uc  *travel.TicketUseCase
	pnr *travel.PNRUseCase
}

// NewTicketHandler construye el handler de billetes.
func NewTicketHandler(uc *travel.TicketUseCase, pnr *travel.PNRUseCase) *TicketHandler {
	return &TicketHandler{uc: uc, pnr: pnr}
}

// Create godoc
// @Summary      Registrar billete
// @Tags         tickets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TicketRequest  true  "Billete con pasajeros y tramos"
// @Success      201   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tickets [post]
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var in dto.TicketRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *TicketHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "billete")
	}
	return c.JSON(out)
}

// List ?customer_id, ?status, ?search (PNR o número de billete).
func (h *TicketHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.Context(), GetUserID(c), repository.TicketFilter{
		CustomerID: c.Query("customer_id"),
		Status:     c.Query("status"),
		Search:     c.Query("search"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *TicketHandler) Update(c *fiber.Ctx) error {
	var in dto.TicketRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ParsePNR godoc
// @Summary      Leer texto de reserva (PNR)
// @Description  Devuelve un borrador para prellenar el formulario; no guarda nada.
// @Tags         tickets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ParsePNRRequest  true  "Texto pegado del GDS o del e-ticket"
// @Success      200   {object}  dto.PNRPrefillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tickets/parse-pnr [post]
func (h *TicketHandler) ParsePNR(c *fiber.Ctx) error {
	var in dto.ParsePNRRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.pnr.Parse(c.Context(), GetUserID(c), in.Text)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToInvoice godoc
// @Summary      Facturar billete
// @Description  Una línea por pasajero; el billete queda vinculado a la factura.
// @Tags         tickets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del billete"
// @Param        body  body  dto.TicketInvoiceRequest  false "Tasa de impuesto y modo de precios"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tickets/{id}/invoice [post]
func (h *TicketHandler) ToInvoice(c *fiber.Ctx) error {
	var in dto.TicketInvoiceRequest
	if len(c.Body()) > 0 && !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.ToInvoice(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// HotelHandler reservas de hotel.
type HotelHandler struct {
	uc *travel.HotelUseCase
}

func NewHotelHandler(uc *travel.HotelUseCase) *HotelHandler {
	return &HotelHandler{uc: uc}
}

// Create godoc
// @Summary      Crear reserva de hotel
// @Description  En modo commission el neto y la ganancia se derivan de la tasa.
// @Tags         hotels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.HotelReservationRequest  true  "Reserva"
// @Success      201   {object}  dto.HotelReservationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/hotels [post]
func (h *HotelHandler) Create(c *fiber.Ctx) error {
	var in dto.HotelReservationRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *HotelHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "reserva")
	}
	return c.JSON(out)
}

func (h *HotelHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.Context(), GetUserID(c), repository.HotelFilter{
		CustomerID: c.Query("customer_id"),
		Status:     c.Query("status"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *HotelHandler) Update(c *fiber.Ctx) error {
	var in dto.HotelReservationRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "reserva")
	}
	return c.JSON(out)
}

func (h *HotelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
