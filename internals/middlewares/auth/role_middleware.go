package auth

import (
	"github.com/gofiber/fiber/v2"

	"msns_backend/internals/constants"
	helper "msns_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError guards plain HTTP routes; it must run after
// RequireSession.
func RoleMiddlewareWithCustomError(allowedRoles []constants.Role, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := PrincipalFromCtx(c)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		if p.Role != constants.RoleNone && p.Role.In(allowedRoles) {
			return c.Next()
		}
		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helper.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

func OnlyRoles(customMessage string, roles ...constants.Role) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
