package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-console/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// RequireRole rejects requests whose principal is not one of the given roles.
func RequireRole(roles ...domain.Role) fiber.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		user := Principal(c)
		if user == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, ok := allowed[user.Role]; !ok {
			return apperrors.NewForbidden("insufficient role for this operation")
		}
		return c.Next()
	}
}

// RequireStaff allows staff and admin principals.
func RequireStaff() fiber.Handler {
	return RequireRole(domain.RoleStaff, domain.RoleAdmin)
}

// RequireAdmin allows only admin principals.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
