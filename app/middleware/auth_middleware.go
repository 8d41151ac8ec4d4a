// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/amirphl/restaurant-hub/app/dto"
	"github.com/amirphl/restaurant-hub/app/services"
	"github.com/amirphl/restaurant-hub/logging"
	"github.com/amirphl/restaurant-hub/models"
	"github.com/amirphl/restaurant-hub/repository"
	"github.com/gofiber/fiber/v3"
)

// RestaurantLocalsKey holds the restaurant bound to the request
const RestaurantLocalsKey = "restaurant"

const bearerPrefix = "Bearer "

// AuthMiddleware binds a bearer token to the current persisted restaurant
type AuthMiddleware struct {
	tokenService   services.TokenService
	restaurantRepo repository.RestaurantRepository
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService, restaurantRepo repository.RestaurantRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService:   tokenService,
		restaurantRepo: restaurantRepo,
	}
}

func unauthorized(c fiber.Ctx, message, code string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: code,
		},
	})
}

// Authenticate validates the bearer token and loads the bound restaurant from
// the store on every request. Expired, tampered and malformed tokens all get
// the same response.
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := c.Context()
		logger := logging.FromContext(ctx)

		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, bearerPrefix) || strings.TrimSpace(authHeader[len(bearerPrefix):]) == "" {
			recordAuthRejection(RejectNoToken)
			return unauthorized(c, "Token not provided", "TOKEN_NOT_PROVIDED")
		}
		token := strings.TrimSpace(authHeader[len(bearerPrefix):])

		claims, err := m.tokenService.ValidateToken(token)
		if err != nil {
			reason := RejectInvalid
			if errors.Is(err, services.ErrTokenExpired) {
				reason = RejectExpired
			}
			recordAuthRejection(reason)
			logger.DebugContext(ctx, "token rejected", "reason", reason)
			return unauthorized(c, "Invalid token", "INVALID_TOKEN")
		}

		restaurant, err := m.restaurantRepo.ByID(ctx, claims.RestaurantID)
		if err != nil {
			recordAuthRejection(RejectLookupFailed)
			logger.ErrorContext(ctx, "restaurant lookup failed", "restaurant_id", claims.RestaurantID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
				Success: false,
				Message: "Authentication failed",
				Error:   dto.ErrorDetail{Code: "AUTH_LOOKUP_FAILED"},
			})
		}
		if restaurant == nil {
			recordAuthRejection(RejectRestaurantNotFound)
			return unauthorized(c, "Restaurant not found", "RESTAURANT_NOT_FOUND")
		}

		c.Locals(RestaurantLocalsKey, restaurant)

		return c.Next()
	}
}

// GetRestaurantFromContext returns the restaurant bound by Authenticate
func GetRestaurantFromContext(c fiber.Ctx) (*models.Restaurant, bool) {
	restaurant, ok := c.Locals(RestaurantLocalsKey).(*models.Restaurant)
	return restaurant, ok && restaurant != nil
}
