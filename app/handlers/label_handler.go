package handlers

import (
	"time"

	"github.com/amirphl/restaurant-hub/app/dto"
	"github.com/amirphl/restaurant-hub/app/middleware"
	businessflow "github.com/amirphl/restaurant-hub/business_flow"
	"github.com/gofiber/fiber/v3"
)

// LabelHandlerInterface defines the contract for label handlers
type LabelHandlerInterface interface {
	GenerateLabel(c fiber.Ctx) error
}

// LabelHandler builds shipping labels for the caller's orders
type LabelHandler struct {
	baseHandler
	labelFlow businessflow.LabelFlow
}

// NewLabelHandler creates a new label handler
func NewLabelHandler(labelFlow businessflow.LabelFlow, requestTimeout time.Duration) *LabelHandler {
	return &LabelHandler{
		baseHandler: newBaseHandler(requestTimeout),
		labelFlow:   labelFlow,
	}
}

// GenerateLabel handles label generation
// @Summary Generate Label
// @Description Build label data for an order, stamped with the caller's name and the current UTC time
// @Tags Labels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateLabelRequest true "Order data"
// @Success 200 {object} dto.APIResponse{data=dto.GenerateLabelResponse} "Label generated"
// @Failure 400 {object} dto.APIResponse "Incomplete order data"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /labels/generate [post]
func (h *LabelHandler) GenerateLabel(c fiber.Ctx) error {
	restaurant, ok := middleware.GetRestaurantFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Restaurant not found", "RESTAURANT_NOT_FOUND", nil)
	}

	var req dto.GenerateLabelRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.invalidBody(c, err)
	}

	if details, _ := h.validate(&req); details != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Incomplete order data", "INCOMPLETE_ORDER_DATA", details)
	}

	ctx, cancel := h.createRequestContext(c, "/labels/generate")
	defer cancel()

	result, err := h.labelFlow.GenerateLabel(ctx, restaurant, &req)
	if err != nil {
		if businessflow.IsIncompleteOrderData(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Incomplete order data", "INCOMPLETE_ORDER_DATA", nil)
		}
		return h.failure(c, err, "Failed to generate label", "GENERATE_LABEL_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Label generated successfully", result)
}
