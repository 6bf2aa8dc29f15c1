package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salmichou-pos/internal/application/exchange"
)

// ExchangeHandler exportación, importación y respaldos.
type ExchangeHandler struct {
	manager   *exchange.Manager
	scheduler *exchange.Scheduler
}

// NewExchangeHandler construye el handler.
func NewExchangeHandler(m *exchange.Manager, s *exchange.Scheduler) *ExchangeHandler {
	return &ExchangeHandler{manager: m, scheduler: s}
}

// Export godoc
// @Summary      Exportar datos
// @Tags         exchange
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "products | categories | sales | users | full_backup"
// @Success      200   {object}  exchange.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/export/{type} [get]
func (h *ExchangeHandler) Export(c *fiber.Ctx) error {
	raw, filename, err := h.manager.Export(c.Params("type"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(raw)
}

// Import godoc
// @Summary      Importar datos (reemplaza colecciones completas)
// @Tags         exchange
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        type  query  string  false  "auto | products | categories | sales | users | full"  default(auto)
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/import [post]
func (h *ExchangeHandler) Import(c *fiber.Ctx) error {
	out, err := h.manager.ImportAs(c.UserContext(), GetUserID(c), c.Body(), c.Query("type", exchange.ImportAuto))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BackupStatus godoc
// @Summary      Estado del respaldo automático
// @Tags         exchange
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BackupStatus
// @Router       /api/backups [get]
func (h *ExchangeHandler) BackupStatus(c *fiber.Ctx) error {
	return c.JSON(h.scheduler.Status())
}

// BackupNow godoc
// @Summary      Escribir un respaldo completo ahora
// @Tags         exchange
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.BackupStatus
// @Router       /api/backups [post]
func (h *ExchangeHandler) BackupNow(c *fiber.Ctx) error {
	if _, err := h.scheduler.BackupNow(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.scheduler.Status())
}
