package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/application/usecase"
)

// CompanyHandler perfil de la agencia (datos fiscales, logo).
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get godoc
// @Summary      Perfil de la empresa
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "perfil de empresa")
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar perfil de la empresa
// @Tags         company
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompanyProfileRequest  true  "Perfil"
// @Success      200   {object}  dto.CompanyProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company [put]
func (h *CompanyHandler) Save(c *fiber.Ctx) error {
	var in dto.CompanyProfileRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Save(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UploadLogo recibe multipart/form-data con el campo "file".
func (h *CompanyHandler) UploadLogo(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "campo file requerido")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "INVALID_FILE", "no se pudo leer el archivo")
	}
	defer f.Close()

	out, err := h.uc.UploadLogo(c.Context(), GetUserID(c), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LogoURL URL prefirmada temporal del logo.
func (h *CompanyHandler) LogoURL(c *fiber.Ctx) error {
	url, err := h.uc.LogoURL(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FileURLResponse{URL: url})
}
