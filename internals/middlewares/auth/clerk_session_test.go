package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msns_backend/internals/constants"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func sign(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return tok
}

func pemOf(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func TestVerifyResolvesRoleFromMetadata(t *testing.T) {
	key := newKey(t)
	v, err := NewVerifier(pemOf(t, key))
	require.NoError(t, err)

	p, err := v.Verify(sign(t, key, jwt.MapClaims{
		"sub":      "user_1",
		"sid":      "sess_1",
		"exp":      time.Now().Add(time.Minute).Unix(),
		"metadata": map[string]any{"role": "Clerk"},
	}))
	require.NoError(t, err)
	assert.Equal(t, "user_1", p.UserID)
	assert.Equal(t, constants.RoleClerk, p.Role)
}

func TestVerifyUnknownOrMissingRoleIsNone(t *testing.T) {
	key := newKey(t)
	v := NewVerifierFromKey(&key.PublicKey)

	for _, md := range []any{nil, map[string]any{}, map[string]any{"role": "superuser"}} {
		claims := jwt.MapClaims{"sub": "user_1", "exp": time.Now().Add(time.Minute).Unix()}
		if md != nil {
			claims["metadata"] = md
		}
		p, err := v.Verify(sign(t, key, claims))
		require.NoError(t, err)
		assert.Equal(t, constants.RoleNone, p.Role)
	}
}

func TestVerifyRejectsExpiredAndForeignTokens(t *testing.T) {
	key := newKey(t)
	other := newKey(t)
	v := NewVerifierFromKey(&key.PublicKey)

	_, err := v.Verify(sign(t, key, jwt.MapClaims{"sub": "u", "exp": time.Now().Add(-time.Minute).Unix()}))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.Verify(sign(t, other, jwt.MapClaims{"sub": "u", "exp": time.Now().Add(time.Minute).Unix()}))
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = v.Verify(hs)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequireSessionAndRoleGuard(t *testing.T) {
	key := newKey(t)
	v := NewVerifierFromKey(&key.PublicKey)

	app := fiber.New()
	app.Get("/admin", RequireSession(v), OnlyRoles("", constants.RoleAdmin), func(c *fiber.Ctx) error {
		p, _ := PrincipalFrom(c.UserContext())
		return c.SendString(p.UserID)
	})

	token := func(role string) string {
		return sign(t, key, jwt.MapClaims{
			"sub":      "user_9",
			"exp":      time.Now().Add(time.Minute).Unix(),
			"metadata": map[string]any{"role": role},
		})
	}

	cases := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{"no token", "", "", fiber.StatusUnauthorized},
		{"bad scheme", "Basic abc", "", fiber.StatusUnauthorized},
		{"clerk role", "Bearer " + token("clerk"), "", fiber.StatusForbidden},
		{"no role", "Bearer " + token(""), "", fiber.StatusForbidden},
		{"admin header", "Bearer " + token("admin"), "", fiber.StatusOK},
		{"admin cookie", "", token("admin"), fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.Header.Set("Cookie", "__session="+tc.cookie)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
