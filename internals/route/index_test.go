package routes

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msns_backend/internals/constants"
	"msns_backend/internals/databases/dbtest"
	sessionmodel "msns_backend/internals/features/academics/sessions/model"
	"msns_backend/internals/helpers/storage"
	"msns_backend/internals/middlewares/auth"
	"msns_backend/internals/rpc"
)

func TestHealthAndMetrics(t *testing.T) {
	db := dbtest.Open(t)
	reg := prometheus.NewRegistry()
	hits := prometheus.NewCounter(prometheus.CounterOpts{Name: "msns_test_hits_total", Help: "test"})
	reg.MustRegister(hits)
	hits.Inc()

	app := fiber.New()
	BaseRoutes(app, db, reg)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"status":"ok"`)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "msns_test_hits_total 1")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetricsDisabledWithoutRegistry(t *testing.T) {
	app := fiber.New()
	BaseRoutes(app, dbtest.Open(t), nil)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestNewRouterRegistersEveryArea(t *testing.T) {
	db := dbtest.Open(t)
	r := NewRouter(Deps{DB: db, Logger: zerolog.Nop(), Store: storage.NewMemory("test")})

	areas := map[string]bool{}
	for _, name := range r.Names() {
		areas[strings.SplitN(name, ".", 2)[0]] = true
	}
	for _, a := range []string{"session", "class", "subject", "alotment", "student", "employee",
		"user", "fee", "salary", "event", "report", "upload"} {
		assert.True(t, areas[a], a)
	}

	dbtest.Session(t, db, "2025-2026", true)
	admin := auth.WithPrincipal(context.Background(), auth.Principal{UserID: "user_1", Role: constants.RoleAdmin})
	out, err := r.Call(admin, "session.getSessions", nil)
	require.NoError(t, err)
	rows, ok := out.([]sessionmodel.SessionModel)
	require.True(t, ok)
	assert.Len(t, rows, 1)

	_, err = r.Call(context.Background(), "session.getSessions", nil)
	assert.Equal(t, rpc.CodeUnauthorized, rpc.CodeOf(err))
}
