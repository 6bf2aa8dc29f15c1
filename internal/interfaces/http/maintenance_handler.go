package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salmichou-pos/internal/application/usecase"
)

// MaintenanceHandler reinicio de datos y salud.
type MaintenanceHandler struct {
	uc *usecase.MaintenanceUseCase
}

// NewMaintenanceHandler construye el handler.
func NewMaintenanceHandler(uc *usecase.MaintenanceUseCase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

// Reset godoc
// @Summary      Restablecer los datos iniciales
// @Tags         maintenance
// @Security     Bearer
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reset [post]
func (h *MaintenanceHandler) Reset(c *fiber.Ctx) error {
	if err := h.uc.Reset(c.UserContext(), GetSession(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Health godoc
// @Summary      Salud del servicio
// @Tags         maintenance
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *MaintenanceHandler) Health(c *fiber.Ctx) error {
	last, err := h.uc.LastSave()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok", "last_save": last})
}
