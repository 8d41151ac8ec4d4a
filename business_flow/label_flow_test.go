package businessflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirphl/restaurant-hub/app/dto"
	businessflow "github.com/amirphl/restaurant-hub/business_flow"
	"github.com/amirphl/restaurant-hub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLabel(t *testing.T) {
	flow := businessflow.NewLabelFlow()
	restaurant := &models.Restaurant{ID: 1, Name: "Pizza Co"}
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		resp, err := flow.GenerateLabel(ctx, restaurant, &dto.GenerateLabelRequest{
			OrderID:  "A-1",
			Customer: "Maria",
			Items:    []any{"pizza", map[string]any{"sku": "PZ-001", "qty": float64(2)}},
			Address:  "Rua A, 10",
		})
		require.NoError(t, err)
		assert.Equal(t, "A-1", resp.Label.OrderID)
		assert.Equal(t, "Pizza Co", resp.Label.Restaurant)
		assert.Equal(t, "Rua A, 10", resp.Label.Address)
		assert.Len(t, resp.Label.Items, 2)

		date, err := time.Parse(businessflow.LabelDateLayout, resp.Label.Date)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC(), date, time.Minute)
	})

	t.Run("DefaultAddress", func(t *testing.T) {
		resp, err := flow.GenerateLabel(ctx, restaurant, &dto.GenerateLabelRequest{OrderID: float64(7), Customer: "Jo", Items: []any{"x"}})
		require.NoError(t, err)
		assert.Equal(t, businessflow.LabelAddressNotProvided, resp.Label.Address)
	})

	t.Run("IncompleteOrder", func(t *testing.T) {
		cases := map[string]*dto.GenerateLabelRequest{
			"nil":          nil,
			"no order id":  {Customer: "Jo", Items: []any{"x"}},
			"zero orderid": {OrderID: float64(0), Customer: "Jo", Items: []any{"x"}},
			"no customer":  {OrderID: "A", Items: []any{"x"}},
			"no items":     {OrderID: "A", Customer: "Jo"},
			"empty items":  {OrderID: "A", Customer: "Jo", Items: []any{}},
		}
		for name, req := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := flow.GenerateLabel(ctx, restaurant, req)
				assert.True(t, businessflow.IsIncompleteOrderData(err))
				assert.Equal(t, businessflow.KindValidation, businessflow.KindOf(err))
			})
		}
	})
}
