package businessflow_test

import (
	"encoding/json"
	"testing"

	"github.com/amirphl/restaurant-hub/app/dto"
	"github.com/amirphl/restaurant-hub/app/services"
	businessflow "github.com/amirphl/restaurant-hub/business_flow"
	"github.com/amirphl/restaurant-hub/config"
	testingutil "github.com/amirphl/restaurant-hub/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleWebhook(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		deps := newFlowDeps(t, testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		restaurant, err := fixtures.CreateTestRestaurant("Pizza Co")
		require.NoError(t, err)

		open := businessflow.NewPaymentFlow(deps.restaurantRepo, deps.events, config.PaymentConfig{})

		paidOf := func(t *testing.T) bool {
			stored, err := deps.restaurantRepo.ByID(ctx, restaurant.ID)
			require.NoError(t, err)
			return stored.Paid
		}

		t.Run("PaidStatusMarksPaid", func(t *testing.T) {
			resp, err := open.HandleWebhook(ctx, &dto.PaymentWebhookRequest{PaymentID: json.RawMessage(`"p1"`), Status: "paid", RestaurantID: restaurant.ID}, "", nil)
			require.NoError(t, err)
			assert.True(t, resp.Paid)
			assert.True(t, paidOf(t))
			assert.Contains(t, deps.events.Types(), services.EventPaymentStatusChanged)
		})

		t.Run("OtherStatusClearsPaid", func(t *testing.T) {
			for _, status := range []string{"failed", "PAID", ""} {
				_, err := open.HandleWebhook(ctx, &dto.PaymentWebhookRequest{Status: "paid", RestaurantID: restaurant.ID}, "", nil)
				require.NoError(t, err)

				resp, err := open.HandleWebhook(ctx, &dto.PaymentWebhookRequest{Status: status, RestaurantID: restaurant.ID}, "", nil)
				require.NoError(t, err)
				assert.False(t, resp.Paid, status)
				assert.False(t, paidOf(t), status)
			}
		})

		t.Run("UnknownRestaurant", func(t *testing.T) {
			_, err := open.HandleWebhook(ctx, &dto.PaymentWebhookRequest{Status: "paid", RestaurantID: 999999}, "", nil)
			assert.True(t, businessflow.IsRestaurantNotFound(err))
			assert.Equal(t, businessflow.KindNotFound, businessflow.KindOf(err))
		})

		t.Run("MissingRestaurantID", func(t *testing.T) {
			_, err := open.HandleWebhook(ctx, &dto.PaymentWebhookRequest{Status: "paid"}, "", nil)
			assert.True(t, businessflow.IsRestaurantIDRequired(err))
			assert.Equal(t, businessflow.KindValidation, businessflow.KindOf(err))
		})

		t.Run("SharedSecret", func(t *testing.T) {
			guarded := businessflow.NewPaymentFlow(deps.restaurantRepo, deps.events, config.PaymentConfig{WebhookSecret: "hook-secret", WebhookHeader: "X-Webhook-Secret"})
			req := &dto.PaymentWebhookRequest{Status: "paid", RestaurantID: restaurant.ID}

			for _, secret := range []string{"", "hook-secre", "wrong"} {
				_, err := guarded.HandleWebhook(ctx, req, secret, nil)
				assert.True(t, businessflow.IsInvalidWebhookSecret(err), secret)
				assert.Equal(t, businessflow.KindAuthentication, businessflow.KindOf(err))
			}

			_, err := guarded.HandleWebhook(ctx, req, "hook-secret", nil)
			assert.NoError(t, err)
		})

		return nil
	})
	require.NoError(t, err)
}
