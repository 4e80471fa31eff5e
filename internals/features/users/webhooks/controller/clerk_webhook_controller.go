package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	svix "github.com/svix/svix-webhooks/go"

	"msns_backend/internals/features/users/webhooks/service"
)

type ClerkWebhookController struct {
	svc    *service.Service
	secret string
}

func NewClerkWebhookController(svc *service.Service, secret string) *ClerkWebhookController {
	return &ClerkWebhookController{svc: svc, secret: secret}
}

func webhookError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// POST /api/webhook/clerk
func (ctl *ClerkWebhookController) Handle(c *fiber.Ctx) error {
	log := zerolog.Ctx(c.UserContext())

	id := c.Get("svix-id")
	ts := c.Get("svix-timestamp")
	sig := c.Get("svix-signature")
	if id == "" || ts == "" || sig == "" {
		return webhookError(c, fiber.StatusBadRequest, "Error: Missing svix headers")
	}
	if ctl.secret == "" {
		log.Error().Msg("CLERK_WEBHOOK_SECRET is not set")
		return webhookError(c, fiber.StatusInternalServerError, "Webhook secret not configured")
	}

	wh, err := svix.NewWebhook(ctl.secret)
	if err != nil {
		log.Error().Err(err).Msg("invalid webhook secret")
		return webhookError(c, fiber.StatusInternalServerError, "Webhook secret not configured")
	}
	headers := http.Header{}
	headers.Set("svix-id", id)
	headers.Set("svix-timestamp", ts)
	headers.Set("svix-signature", sig)

	body := append([]byte(nil), c.Body()...)
	if err := wh.Verify(body, headers); err != nil {
		log.Warn().Err(err).Str("svix_id", id).Msg("webhook verification failed")
		return webhookError(c, fiber.StatusBadRequest, "Error verifying webhook")
	}

	replayed, err := ctl.svc.Handle(c.UserContext(), id, body)
	switch {
	case errors.Is(err, service.ErrAssignRole):
		log.Error().Err(err).Str("svix_id", id).Msg("clerk role assignment failed")
		return webhookError(c, fiber.StatusInternalServerError, "Error setting default role")
	case err != nil:
		log.Error().Err(err).Str("svix_id", id).Msg("clerk webhook failed")
		return webhookError(c, fiber.StatusInternalServerError, "Error processing webhook")
	}
	if replayed {
		log.Debug().Str("svix_id", id).Msg("clerk webhook replay ignored")
	}
	return c.JSON(fiber.Map{"success": true})
}
