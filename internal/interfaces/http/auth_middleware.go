package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salmichou-pos/internal/application/auth"
	"github.com/jhoicas/salmichou-pos/internal/application/dto"
	"github.com/jhoicas/salmichou-pos/internal/domain"
)

// Locals keys de la sesión restaurada.
const (
	LocalSession   = "session"
	LocalSessionID = "session_id"
	LocalUserID    = "user_id"
	LocalRole      = "role"
)

// AuthMiddleware valida el Bearer Token, restaura la sesión del cliente desde su almacenamiento
// local y la deja en c.Locals. Sesión expirada o cerrada: 401.
func AuthMiddleware(uc *auth.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}

		m, sessionID, err := uc.Resume(c.UserContext(), tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o sesión expirada"})
			}
			return writeError(c, err)
		}
		user, _ := m.CurrentUser()
		c.Locals(LocalSession, m)
		c.Locals(LocalSessionID, sessionID)
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// GetSession devuelve el Manager de la sesión (después del middleware de auth).
func GetSession(c *fiber.Ctx) *auth.Manager {
	m, _ := c.Locals(LocalSession).(*auth.Manager)
	return m
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del usuario de la sesión.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
