package businessflow

import (
	"context"
	"strings"

	"github.com/amirphl/restaurant-hub/app/dto"
	"github.com/amirphl/restaurant-hub/models"
	"github.com/amirphl/restaurant-hub/utils"
)

// LabelAddressNotProvided is printed when the order has no address
const LabelAddressNotProvided = "Not provided"

// LabelDateLayout is the label timestamp layout: UTC with millisecond precision
const LabelDateLayout = "2006-01-02T15:04:05.000Z"

// LabelFlow builds shipping label data for an order
type LabelFlow interface {
	GenerateLabel(ctx context.Context, restaurant *models.Restaurant, req *dto.GenerateLabelRequest) (*dto.GenerateLabelResponse, error)
}

// LabelFlowImpl implements LabelFlow
type LabelFlowImpl struct{}

// NewLabelFlow creates a new label flow instance
func NewLabelFlow() LabelFlow {
	return &LabelFlowImpl{}
}

func (f *LabelFlowImpl) GenerateLabel(ctx context.Context, restaurant *models.Restaurant, req *dto.GenerateLabelRequest) (*dto.GenerateLabelResponse, error) {
	if restaurant == nil {
		return nil, NewBusinessError("GENERATE_LABEL_FAILED", "Generate label failed", ErrRestaurantNotFound)
	}
	if req == nil || isBlank(req.OrderID) || isBlank(req.Customer) || len(req.Items) == 0 {
		return nil, NewBusinessError("LABEL_VALIDATION_FAILED", "Label validation failed", ErrIncompleteOrderData)
	}

	address := req.Address
	if strings.TrimSpace(address) == "" {
		address = LabelAddressNotProvided
	}

	return &dto.GenerateLabelResponse{
		Label: dto.LabelDTO{
			OrderID:    req.OrderID,
			Customer:   req.Customer,
			Items:      req.Items,
			Address:    address,
			Restaurant: restaurant.Name,
			Date:       utils.UTCNow().Format(LabelDateLayout),
		},
	}, nil
}

// isBlank reports whether a decoded JSON value is null, an empty string, zero or false
func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case float64:
		return val == 0
	case bool:
		return !val
	default:
		return false
	}
}
