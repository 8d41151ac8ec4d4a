package dto

import "encoding/json"

// PaymentWebhookRequest is sent by the payment platform. paymentId is kept
// as received; platforms send it as a string or a number.
type PaymentWebhookRequest struct {
	PaymentID    json.RawMessage `json:"paymentId,omitempty" swaggertype:"string" example:"pay_123"`
	Status       string          `json:"status" example:"paid"`
	RestaurantID uint            `json:"restaurantId" example:"1"`
}

// PaymentWebhookResponse reports the persisted payment flag
type PaymentWebhookResponse struct {
	RestaurantID uint `json:"restaurant_id" example:"1"`
	Paid         bool `json:"paid" example:"true"`
}
