// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/amirphl/restaurant-hub/app/dto"
	businessflow "github.com/amirphl/restaurant-hub/business_flow"
	"github.com/amirphl/restaurant-hub/logging"
	"github.com/amirphl/restaurant-hub/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

const invalidBodyDetails = "Request body must be a JSON object with correctly typed fields"

// baseHandler carries what every handler needs: response helpers, the
// validator and the per-request timeout.
type baseHandler struct {
	validator      *validator.Validate
	requestTimeout time.Duration
}

func newBaseHandler(requestTimeout time.Duration) baseHandler {
	if requestTimeout <= 0 {
		requestTimeout = utils.DefaultRequestTimeout
	}
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return baseHandler{
		validator:      v,
		requestTimeout: requestTimeout,
	}
}

func (h *baseHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *baseHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// invalidBody answers a body that could not be decoded. The decoder error
// names Go types, so it only goes to the log.
func (h *baseHandler) invalidBody(c fiber.Ctx, err error) error {
	h.logBindFailure(c, err)
	return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", invalidBodyDetails)
}

func (h *baseHandler) logBindFailure(c fiber.Ctx, err error) {
	logging.FromContext(c.Context()).DebugContext(c.Context(), "request body rejected", "path", c.Path(), "error", err)
}

// createRequestContext derives the business-layer context from the request
// context, so the request-scoped logger travels with it
func (h *baseHandler) createRequestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Context(), h.requestTimeout)
	logger := logging.FromContext(ctx).With("endpoint", endpoint)
	return logging.IntoContext(ctx, logger), cancel
}

// validate runs struct validation and returns one message per failed field.
// missing reports whether any failure is an absent required field.
func (h *baseHandler) validate(req any) (details []string, missing bool) {
	err := h.validator.Struct(req)
	if err == nil {
		return nil, false
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{"request could not be validated"}, false
	}

	for _, fe := range validationErrors {
		if fe.Tag() == "required" || fe.Tag() == "min" && fe.Kind() == reflect.Slice {
			missing = true
		}
		details = append(details, getValidationErrorMessage(fe))
	}
	return details, missing
}

// failure answers a flow error that no handler-specific branch claimed.
// Unclassified errors are logged and surfaced as a generic 500.
func (h *baseHandler) failure(c fiber.Ctx, err error, message, code string) error {
	status := statusForKind(businessflow.KindOf(err))
	if status == fiber.StatusInternalServerError {
		logging.FromContext(c.Context()).ErrorContext(c.Context(), message, "error", err)
	}
	return h.ErrorResponse(c, status, message, code, nil)
}

func statusForKind(kind businessflow.ErrorKind) int {
	switch kind {
	case businessflow.KindValidation, businessflow.KindConflict:
		return fiber.StatusBadRequest
	case businessflow.KindAuthentication:
		return fiber.StatusUnauthorized
	case businessflow.KindNotFound:
		return fiber.StatusNotFound
	case businessflow.KindRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

func clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get(fiber.HeaderUserAgent))
	metadata.SetRequestID(requestid.FromContext(c))
	return metadata
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		if err.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", err.Field(), err.Param())
		}
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}
