// Package businessflow contains the business logic for the application.
package businessflow

import (
	"context"
	"strconv"

	"github.com/amirphl/restaurant-hub/app/dto"
	"github.com/amirphl/restaurant-hub/app/services"
	"github.com/amirphl/restaurant-hub/logging"
	"github.com/amirphl/restaurant-hub/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client information for logging
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

func (cm *ClientMetadata) clientIP() string {
	if cm == nil {
		return ""
	}
	return cm.IPAddress
}

func (cm *ClientMetadata) logAttrs() []any {
	if cm == nil {
		return nil
	}
	return []any{"ip_address", cm.IPAddress, "request_id", cm.RequestID}
}

// ToRestaurantDTO converts a restaurant model to its listing projection
func ToRestaurantDTO(r models.Restaurant) dto.RestaurantDTO {
	return dto.RestaurantDTO{
		ID:     r.ID,
		Name:   r.Name,
		Email:  r.Email,
		Online: r.Online,
		Paid:   r.Paid,
	}
}

// ToRestaurantPublicDTO converts a restaurant model to the login projection
func ToRestaurantPublicDTO(r models.Restaurant) dto.RestaurantPublicDTO {
	return dto.RestaurantPublicDTO{
		ID:     r.ID,
		Name:   r.Name,
		Online: r.Online,
	}
}

// ToProductDTO converts a product model to its catalog projection
func ToProductDTO(p models.Product) dto.ProductDTO {
	return dto.ProductDTO{
		UID:              p.UID,
		Name:             p.Name,
		SKUCode:          p.SKUCode,
		Sector:           p.Sector,
		Price:            p.Price,
		PromotionalPrice: p.PromotionalPrice,
		Quantity:         p.Quantity,
		Brand:            p.Brand,
		SupplierID:       p.SupplierID,
		Status:           p.Status,
		Barcode:          p.Barcode,
		Cost:             p.Cost,
		UnitOfMeasure:    p.UnitOfMeasure,
		CreatedAt:        p.CreatedAt,
	}
}

// publish sends a domain event after the state change has been committed.
// Delivery failures are logged; the request has already succeeded.
func publish(ctx context.Context, events services.EventPublisher, eventType string, key uint, payload any) {
	event := services.NewDomainEvent(eventType, strconv.FormatUint(uint64(key), 10), payload)
	if err := events.Publish(ctx, event); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "failed to publish domain event",
			"event_type", eventType, "event_id", event.ID, "error", err)
	}
}
