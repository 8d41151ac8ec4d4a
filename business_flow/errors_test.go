package businessflow_test

import (
	"errors"
	"fmt"
	"testing"

	businessflow "github.com/amirphl/restaurant-hub/business_flow"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		kind businessflow.ErrorKind
	}{
		{businessflow.ErrMissingRegistrationFields, businessflow.KindValidation},
		{businessflow.ErrEmailAlreadyRegistered, businessflow.KindConflict},
		{businessflow.ErrInvalidCredentials, businessflow.KindAuthentication},
		{businessflow.ErrRestaurantNotFound, businessflow.KindNotFound},
		{businessflow.ErrTooManyLoginAttempts, businessflow.KindRateLimited},
		{errors.New("connection refused"), businessflow.KindPersistence},
		{nil, businessflow.KindPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			wrapped := businessflow.NewBusinessError("CODE", "message", fmt.Errorf("context: %w", tt.err))
			assert.Equal(t, tt.kind, businessflow.KindOf(wrapped))
		})
	}
}

func TestBusinessError(t *testing.T) {
	err := businessflow.NewBusinessError("LOGIN_FAILED", "Login failed", businessflow.ErrInvalidCredentials)
	assert.Equal(t, "Login failed: invalid credentials", err.Error())
	assert.ErrorIs(t, err, businessflow.ErrInvalidCredentials)

	bare := businessflow.NewBusinessError("X", "only message", nil)
	assert.Equal(t, "only message", bare.Error())
}
