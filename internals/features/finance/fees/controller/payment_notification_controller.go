package controller

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"msns_backend/internals/features/finance/fees/service"
)

type PaymentNotificationController struct {
	fees    *service.Service
	gateway service.Gateway
}

func NewPaymentNotificationController(fees *service.Service, gw service.Gateway) *PaymentNotificationController {
	return &PaymentNotificationController{fees: fees, gateway: gw}
}

type notification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
}

// Handle receives Midtrans HTTP notifications. Only fee orders are handled;
// the status is re-read from Midtrans before anything is marked paid.
func (ctl *PaymentNotificationController) Handle(c *fiber.Ctx) error {
	log := zerolog.Ctx(c.UserContext())

	var n notification
	if err := sonic.Unmarshal(c.Body(), &n); err != nil || n.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notification"})
	}
	if !strings.HasPrefix(n.OrderID, "FEE-") {
		return c.JSON(fiber.Map{"success": true})
	}
	if ctl.gateway == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment gateway not configured"})
	}

	settled, err := ctl.gateway.IsSettled(n.OrderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", n.OrderID).Msg("midtrans status check failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Status check failed"})
	}
	if !settled {
		return c.JSON(fiber.Map{"success": true})
	}

	found, err := ctl.fees.MarkPaidByOrder(c.UserContext(), n.OrderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", n.OrderID).Msg("mark fee paid failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unknown order"})
	}
	return c.JSON(fiber.Map{"success": true})
}
