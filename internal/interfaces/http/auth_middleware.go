package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	"github.com/tu-usuario/aquaserv-pro/pkg/jwt"
)

// Locals key para la identidad resuelta en Fiber.
const LocalIdentity = "identity"

// AuthMiddleware valida el Bearer Token JWT y deja la Identity en c.Locals.
// La identidad se resuelve una sola vez aquí; handlers y casos de uso la
// reciben explícita.
func AuthMiddleware(jwtSecret string) fiber.Handler {
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
		actorID, tenantID, kind, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalIdentity, domain.Identity{Kind: kind, ActorID: actorID, TenantID: tenantID})
		return c.Next()
	}
}

// GetIdentity devuelve la Identity del contexto (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) domain.Identity {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return domain.Identity{}
	}
	ident, _ := v.(domain.Identity)
	return ident
}

// RequireAdmin corta con 403 si el actor no es el admin del tenant.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetIdentity(c).IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operación solo para el admin"})
		}
		return c.Next()
	}
}
