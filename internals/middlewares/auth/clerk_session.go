package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"

	"msns_backend/internals/constants"
	helper "msns_backend/internals/helpers"
)

// Clerk puts the session token in the __session cookie for same-site
// requests and in the Authorization header otherwise.
const sessionCookie = "__session"

var (
	ErrNoToken      = errors.New("no session token provided")
	ErrInvalidToken = errors.New("invalid session token")
)

// Verifier checks Clerk session tokens against the instance public key
// (CLERK_JWT_KEY), so verification needs no network round trip.
type Verifier struct {
	key *rsa.PublicKey
}

func NewVerifier(pemKey string) (*Verifier, error) {
	pemKey = strings.ReplaceAll(strings.TrimSpace(pemKey), `\n`, "\n")
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemKey))
	if err != nil {
		return nil, fmt.Errorf("parse clerk jwt key: %w", err)
	}
	return &Verifier{key: key}, nil
}

func NewVerifierFromKey(key *rsa.PublicKey) *Verifier {
	return &Verifier{key: key}
}

func (v *Verifier) Verify(token string) (Principal, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Principal{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return Principal{}, ErrInvalidToken
	}
	sid, _ := claims["sid"].(string)

	return Principal{
		UserID:    sub,
		SessionID: sid,
		Role:      roleFromClaims(claims),
	}, nil
}

// roleFromClaims reads metadata.role (the session token template exposes
// publicMetadata as "metadata"). Anything else resolves to RoleNone.
func roleFromClaims(claims jwt.MapClaims) constants.Role {
	md, ok := claims["metadata"].(map[string]interface{})
	if !ok {
		return constants.RoleNone
	}
	raw, _ := md["role"].(string)
	return constants.ParseRole(raw)
}

func extractToken(c *fiber.Ctx) (string, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header != "" {
		fields := strings.Fields(header)
		if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
			return "", ErrInvalidToken
		}
		tok := strings.Trim(fields[1], "\"'")
		if tok == "" {
			return "", ErrNoToken
		}
		return tok, nil
	}
	if tok := strings.TrimSpace(c.Cookies(sessionCookie)); tok != "" {
		return tok, nil
	}
	return "", ErrNoToken
}

// RequireSession rejects requests without a valid session token and stores
// the principal in both Locals and the user context.
func RequireSession(v *Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, err := extractToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		p, err := v.Verify(tok)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("session token rejected")
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		c.Locals(localsPrincipal, p)
		c.SetUserContext(WithPrincipal(c.UserContext(), p))
		return c.Next()
	}
}
