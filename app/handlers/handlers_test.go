package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirphl/restaurant-hub/app/dto"
	businessflow "github.com/amirphl/restaurant-hub/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{businessflow.ErrMissingRegistrationFields, fiber.StatusBadRequest},
		{businessflow.ErrEmailAlreadyRegistered, fiber.StatusBadRequest},
		{businessflow.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{businessflow.ErrRestaurantNotFound, fiber.StatusNotFound},
		{businessflow.ErrTooManyLoginAttempts, fiber.StatusTooManyRequests},
		{errors.New("connection reset"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			wrapped := businessflow.NewBusinessError("CODE", "message", fmt.Errorf("ctx: %w", tt.err))
			assert.Equal(t, tt.want, statusForKind(businessflow.KindOf(wrapped)))
		})
	}
}

func TestValidate(t *testing.T) {
	h := newBaseHandler(0)

	t.Run("ReportsJSONFieldNames", func(t *testing.T) {
		details, missing := h.validate(&dto.RegisterRequest{Email: "a@x.com", Password: "secret123"})
		assert.True(t, missing)
		assert.Equal(t, []string{"name is required"}, details)
	})

	t.Run("EmptyItemsCountAsMissing", func(t *testing.T) {
		details, missing := h.validate(&dto.GenerateLabelRequest{OrderID: "A-1", Customer: "Maria", Items: []any{}})
		assert.True(t, missing)
		assert.Equal(t, []string{"items must contain at least 1 item(s)"}, details)
	})

	t.Run("ExplicitZeroIsPresent", func(t *testing.T) {
		zero, none, off := 0.0, 0, false
		details, _ := h.validate(&dto.CreateProductRequest{
			Name: "Water", SKUCode: "W-1", Sector: "drinks", Brand: "House",
			Price: &zero, Quantity: &none, Status: &off,
		})
		assert.Nil(t, details)
	})

	t.Run("TooLongIsNotMissing", func(t *testing.T) {
		long := make([]byte, 256)
		for i := range long {
			long[i] = 'a'
		}
		details, missing := h.validate(&dto.RegisterRequest{Name: string(long), Email: "a@x.com", Password: "secret123"})
		assert.False(t, missing)
		assert.Equal(t, []string{"name must be at most 255 characters"}, details)
	})
}
