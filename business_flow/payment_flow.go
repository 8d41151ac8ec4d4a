package businessflow

import (
	"context"
	"crypto/subtle"

	"github.com/amirphl/restaurant-hub/app/dto"
	"github.com/amirphl/restaurant-hub/app/services"
	"github.com/amirphl/restaurant-hub/config"
	"github.com/amirphl/restaurant-hub/logging"
	"github.com/amirphl/restaurant-hub/repository"
)

// PaymentStatusPaid is the only webhook status that marks a restaurant as paid
const PaymentStatusPaid = "paid"

// PaymentFlow handles notifications from the external payment platform
type PaymentFlow interface {
	HandleWebhook(ctx context.Context, req *dto.PaymentWebhookRequest, providedSecret string, metadata *ClientMetadata) (*dto.PaymentWebhookResponse, error)
}

// PaymentFlowImpl implements the payment business flow
type PaymentFlowImpl struct {
	restaurantRepo repository.RestaurantRepository
	events         services.EventPublisher
	paymentCfg     config.PaymentConfig
}

// NewPaymentFlow creates a new payment flow instance
func NewPaymentFlow(
	restaurantRepo repository.RestaurantRepository,
	events services.EventPublisher,
	paymentCfg config.PaymentConfig,
) PaymentFlow {
	return &PaymentFlowImpl{
		restaurantRepo: restaurantRepo,
		events:         events,
		paymentCfg:     paymentCfg,
	}
}

// HandleWebhook sets paid to (status == "paid") for the referenced restaurant.
// When a webhook secret is configured the caller must present it.
func (f *PaymentFlowImpl) HandleWebhook(ctx context.Context, req *dto.PaymentWebhookRequest, providedSecret string, metadata *ClientMetadata) (*dto.PaymentWebhookResponse, error) {
	if f.paymentCfg.WebhookSecret != "" &&
		subtle.ConstantTimeCompare([]byte(providedSecret), []byte(f.paymentCfg.WebhookSecret)) != 1 {
		logging.FromContext(ctx).WarnContext(ctx, "payment webhook rejected", metadata.logAttrs()...)
		return nil, NewBusinessError("WEBHOOK_UNAUTHORIZED", "Webhook unauthorized", ErrInvalidWebhookSecret)
	}

	if req == nil || req.RestaurantID == 0 {
		return nil, NewBusinessError("WEBHOOK_VALIDATION_FAILED", "Webhook validation failed", ErrRestaurantIDRequired)
	}

	restaurant, err := f.restaurantRepo.ByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, NewBusinessError("WEBHOOK_FAILED", "Webhook failed", err)
	}
	if restaurant == nil {
		return nil, NewBusinessError("WEBHOOK_FAILED", "Webhook failed", ErrRestaurantNotFound)
	}

	paid := req.Status == PaymentStatusPaid
	updated, err := f.restaurantRepo.UpdatePaid(ctx, restaurant.ID, paid)
	if err != nil {
		return nil, NewBusinessError("WEBHOOK_FAILED", "Webhook failed", err)
	}
	if !updated {
		return nil, NewBusinessError("WEBHOOK_FAILED", "Webhook failed", ErrRestaurantNotFound)
	}

	logging.FromContext(ctx).InfoContext(ctx, "payment status updated",
		append([]any{"restaurant_id", restaurant.ID, "payment_id", string(req.PaymentID), "paid", paid}, metadata.logAttrs()...)...)

	resp := &dto.PaymentWebhookResponse{RestaurantID: restaurant.ID, Paid: paid}
	publish(ctx, f.events, services.EventPaymentStatusChanged, restaurant.ID, resp)

	return resp, nil
}
