package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
)

// Locals keys para la identidad autenticada en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

// tokenAuthenticator es el contrato mínimo que necesita el middleware.
// Lo implementa *auth.AuthUseCase.
type tokenAuthenticator interface {
	Authenticate(token string) (*auth.Identity, error)
}

// AuthMiddleware valida el Bearer Token y carga la identidad en c.Locals.
// Sin token responde 401; token inválido o expirado responde 403.
func AuthMiddleware(authn tokenAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		identity, err := authn.Authenticate(tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, identity.UserID)
		c.Locals(LocalEmail, identity.Email)
		return c.Next()
	}
}

// GetUserID devuelve el ID de la cuenta autenticada (0 si no hay).
func GetUserID(c *fiber.Ctx) int {
	v, _ := c.Locals(LocalUserID).(int)
	return v
}

// GetEmail devuelve el email de la cuenta autenticada.
func GetEmail(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalEmail).(string)
	return v
}
