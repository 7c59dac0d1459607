package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shelfcam/shelfcam-api/internal/domain"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

// RequireRole ensures the principal's role is in the allowed set. Roles do
// not nest: a route that admits admin says so explicitly.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("missing or invalid credentials")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
