package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"msns_backend/internals/configs"
	"msns_backend/internals/constants"
	"msns_backend/internals/features/users/webhooks/controller"
	"msns_backend/internals/features/users/webhooks/service"
)

// WebhookRoutes mounts the public Clerk webhook. roles may be nil when no
// Clerk secret key is configured.
func WebhookRoutes(app fiber.Router, db *gorm.DB, cfg configs.ClerkConfig, roles service.RoleAssigner) {
	svc := service.New(db, roles, constants.ParseRole(cfg.DefaultRole))
	ctl := controller.NewClerkWebhookController(svc, cfg.WebhookSecret)
	app.Post("/api/webhook/clerk", ctl.Handle)
}
