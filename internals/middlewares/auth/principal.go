package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"msns_backend/internals/constants"
)

// Principal is the caller resolved from a verified Clerk session token.
type Principal struct {
	UserID    string
	SessionID string
	Role      constants.Role
}

type principalKey struct{}

const localsPrincipal = "principal"

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// PrincipalFromCtx reads the principal stored by RequireSession.
func PrincipalFromCtx(c *fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(localsPrincipal).(Principal)
	return p, ok
}
