package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/application/subscription"
)

// RequireSubscription corta con 403 si la suscripción del tenant no permite
// operar (trial vencido, expirada o cancelada). Las rutas de suscripción y
// auth quedan fuera para que el tenant pueda reactivarse.
func RequireSubscription(uc *subscription.UseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident := GetIdentity(c)
		if ident.TenantID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
		}
		ok, err := uc.CheckAccess(c.UserContext(), ident.TenantID)
		if err != nil {
			return writeError(c, err)
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "SUBSCRIPTION_REQUIRED", Message: "la suscripción del negocio no está activa"})
		}
		return c.Next()
	}
}
