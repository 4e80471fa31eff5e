package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/rs/zerolog"

	"msns_backend/internals/configs"
)

// SetupMiddlewares installs the global chain in order: recovery first so
// panics in later handlers are caught, request context before logging.
func SetupMiddlewares(app *fiber.App, cfg configs.HTTPConfig, logger zerolog.Logger) {
	app.Use(RecoveryMiddleware(logger))
	app.Use(RequestContext(logger))
	app.Use(RequestLogger(logger))
	app.Use(CorsMiddleware(cfg.CORSAllowedOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(GlobalRateLimiter(cfg.RateLimitPerMinute))
}
