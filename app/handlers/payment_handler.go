package handlers

import (
	"time"

	"github.com/amirphl/restaurant-hub/app/dto"
	businessflow "github.com/amirphl/restaurant-hub/business_flow"
	"github.com/amirphl/restaurant-hub/config"
	"github.com/gofiber/fiber/v3"
)

// PaymentHandlerInterface defines the contract for payment handlers
type PaymentHandlerInterface interface {
	Webhook(c fiber.Ctx) error
}

// PaymentHandler receives notifications from the payment platform
type PaymentHandler struct {
	baseHandler
	paymentFlow   businessflow.PaymentFlow
	webhookHeader string
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentFlow businessflow.PaymentFlow, paymentCfg config.PaymentConfig, requestTimeout time.Duration) *PaymentHandler {
	return &PaymentHandler{
		baseHandler:   newBaseHandler(requestTimeout),
		paymentFlow:   paymentFlow,
		webhookHeader: paymentCfg.WebhookHeader,
	}
}

// Webhook handles payment status notifications
// @Summary Payment Webhook
// @Description Set the paid flag of a restaurant. Only status "paid" marks it as paid. Requires the shared secret header when one is configured.
// @Tags Payments
// @Accept json
// @Produce json
// @Param X-Webhook-Secret header string false "Shared webhook secret"
// @Param request body dto.PaymentWebhookRequest true "Payment notification"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentWebhookResponse} "Payment status updated"
// @Failure 400 {object} dto.APIResponse "Missing restaurantId"
// @Failure 401 {object} dto.APIResponse "Invalid webhook secret"
// @Failure 404 {object} dto.APIResponse "Restaurant not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(c fiber.Ctx) error {
	var req dto.PaymentWebhookRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.invalidBody(c, err)
	}

	var secret string
	if h.webhookHeader != "" {
		secret = c.Get(h.webhookHeader)
	}

	ctx, cancel := h.createRequestContext(c, "/payments/webhook")
	defer cancel()

	result, err := h.paymentFlow.HandleWebhook(ctx, &req, secret, clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidWebhookSecret(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid webhook secret", "INVALID_WEBHOOK_SECRET", nil)
		}
		if businessflow.IsRestaurantIDRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", []string{"restaurantId is required"})
		}
		if businessflow.IsRestaurantNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Restaurant not found", "RESTAURANT_NOT_FOUND", nil)
		}
		return h.failure(c, err, "Failed to update payment status", "WEBHOOK_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Payment status updated", result)
}
