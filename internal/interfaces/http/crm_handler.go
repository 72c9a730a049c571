package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/application/usecase"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

// DealHandler oportunidades de venta (pipeline).
type DealHandler struct {
	uc *usecase.DealUseCase
}

func NewDealHandler(uc *usecase.DealUseCase) *DealHandler {
	return &DealHandler{uc: uc}
}

// Create godoc
// @Summary      Crear oportunidad
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DealRequest  true  "Oportunidad"
// @Success      201   {object}  dto.DealResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deals [post]
func (h *DealHandler) Create(c *fiber.Ctx) error {
	var in dto.DealRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *DealHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "oportunidad")
	}
	return c.JSON(out)
}

// List filtra por customer_id y stage.
func (h *DealHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.Context(), GetUserID(c), repository.DealFilter{
		CustomerID: c.Query("customer_id"),
		Stage:      c.Query("stage"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *DealHandler) Update(c *fiber.Ctx) error {
	var in dto.DealRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "oportunidad")
	}
	return c.JSON(out)
}

// MoveStage godoc
// @Summary      Mover oportunidad de etapa
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la oportunidad"
// @Param        body  body  dto.DealStageRequest  true  "Nueva etapa"
// @Success      200   {object}  dto.DealResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deals/{id}/stage [patch]
func (h *DealHandler) MoveStage(c *fiber.Ctx) error {
	var in dto.DealStageRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.MoveStage(c.Context(), GetUserID(c), c.Params("id"), in.Stage)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "oportunidad")
	}
	return c.JSON(out)
}

func (h *DealHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ActivityHandler llamadas, reuniones y tareas de seguimiento.
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	var in dto.ActivityRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ActivityHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "actividad")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar actividades
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  string  false  "Cliente"
// @Param        deal_id      query  string  false  "Oportunidad"
// @Param        completed    query  bool    false  "Solo completadas / pendientes"
// @Success      200  {array}  dto.ActivityResponse
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	f := repository.ActivityFilter{
		CustomerID: c.Query("customer_id"),
		DealID:     c.Query("deal_id"),
		Limit:      limit,
		Offset:     offset,
	}
	if c.Query("completed") != "" {
		completed := c.QueryBool("completed")
		f.Completed = &completed
	}
	out, err := h.uc.List(c.Context(), GetUserID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *ActivityHandler) Update(c *fiber.Ctx) error {
	var in dto.ActivityRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "actividad")
	}
	return c.JSON(out)
}

// Complete marca la actividad como hecha.
func (h *ActivityHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "actividad")
	}
	return c.JSON(out)
}

func (h *ActivityHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
