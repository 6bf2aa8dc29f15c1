package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salmichou-pos/internal/application/dto"
	"github.com/jhoicas/salmichou-pos/internal/application/usecase"
)

// PreferencesHandler lee y modifica las preferencias de la aplicación.
type PreferencesHandler struct {
	uc *usecase.PreferencesUseCase
}

// NewPreferencesHandler construye el handler.
func NewPreferencesHandler(uc *usecase.PreferencesUseCase) *PreferencesHandler {
	return &PreferencesHandler{uc: uc}
}

// Get godoc
// @Summary      Preferencias actuales
// @Tags         preferences
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.Preferences
// @Router       /api/preferences [get]
func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar preferencias
// @Tags         preferences
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePreferencesRequest  true  "Campos a modificar"
// @Success      200   {object}  entity.Preferences
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/preferences [put]
func (h *PreferencesHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePreferencesRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar preferencias
// @Tags         preferences
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.Preferences
// @Router       /api/preferences/export [get]
func (h *PreferencesHandler) Export(c *fiber.Ctx) error {
	raw, err := h.uc.Export(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="salmichou-config.json"`)
	return c.Send(raw)
}

// Import godoc
// @Summary      Importar preferencias (se mezclan sobre los valores por defecto)
// @Tags         preferences
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      200  {object}  entity.Preferences
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/preferences/import [post]
func (h *PreferencesHandler) Import(c *fiber.Ctx) error {
	out, err := h.uc.Import(c.UserContext(), c.Body())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
