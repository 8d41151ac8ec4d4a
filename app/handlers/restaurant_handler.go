package handlers

import (
	"fmt"
	"time"

	"github.com/amirphl/restaurant-hub/app/dto"
	"github.com/amirphl/restaurant-hub/app/middleware"
	businessflow "github.com/amirphl/restaurant-hub/business_flow"
	"github.com/gofiber/fiber/v3"
)

// RestaurantHandlerInterface defines the contract for restaurant account handlers
type RestaurantHandlerInterface interface {
	Register(c fiber.Ctx) error
	Login(c fiber.Ctx) error
	ListRestaurants(c fiber.Ctx) error
	SetOnline(c fiber.Ctx) error
}

// RestaurantHandler handles restaurant registration, login and visibility requests
type RestaurantHandler struct {
	baseHandler
	restaurantFlow businessflow.RestaurantFlow
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(restaurantFlow businessflow.RestaurantFlow, requestTimeout time.Duration) *RestaurantHandler {
	return &RestaurantHandler{
		baseHandler:    newBaseHandler(requestTimeout),
		restaurantFlow: restaurantFlow,
	}
}

// Register handles restaurant registration
// @Summary Register Restaurant
// @Description Create a restaurant account. No token is issued; call login afterwards.
// @Tags Restaurants
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Restaurant registration data"
// @Success 201 {object} dto.APIResponse{data=dto.RegisterResponse} "Restaurant registered successfully"
// @Failure 400 {object} dto.APIResponse "Missing fields or email already registered"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /register [post]
func (h *RestaurantHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.invalidBody(c, err)
	}

	if details, missing := h.validate(&req); details != nil {
		if missing {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Name, email, and password are required", "MISSING_FIELDS", details)
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", details)
	}

	ctx, cancel := h.createRequestContext(c, "/register")
	defer cancel()

	result, err := h.restaurantFlow.Register(ctx, &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsMissingRegistrationFields(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Name, email, and password are required", "MISSING_FIELDS", nil)
		}
		if businessflow.IsPasswordTooLong(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Password is too long", "PASSWORD_TOO_LONG", nil)
		}
		if businessflow.IsEmailAlreadyRegistered(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Email already registered", "EMAIL_EXISTS", nil)
		}
		return h.failure(c, err, "Registration failed", "REGISTER_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Restaurant registered successfully", result)
}

// Login handles restaurant login
// @Summary Restaurant Login
// @Description Exchange email and password for a bearer token valid for one hour
// @Tags Restaurants
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Failure 429 {object} dto.APIResponse "Too many login attempts"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /login [post]
func (h *RestaurantHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		h.logBindFailure(c, err)
		middleware.RecordLoginAttempt(middleware.LoginInvalidCredentials)
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS", nil)
	}

	ctx, cancel := h.createRequestContext(c, "/login")
	defer cancel()

	// Empty fields are rejected by the flow as invalid credentials, not here,
	// so the response does not reveal which field was wrong
	result, err := h.restaurantFlow.Login(ctx, &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidCredentials(err) {
			middleware.RecordLoginAttempt(middleware.LoginInvalidCredentials)
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS", nil)
		}
		if businessflow.IsTooManyLoginAttempts(err) {
			middleware.RecordLoginAttempt(middleware.LoginBlocked)
			return h.ErrorResponse(c, fiber.StatusTooManyRequests, "Too many login attempts", "TOO_MANY_LOGIN_ATTEMPTS", nil)
		}
		middleware.RecordLoginAttempt(middleware.LoginError)
		return h.failure(c, err, "Login failed", "LOGIN_FAILED")
	}

	middleware.RecordLoginAttempt(middleware.LoginSuccess)
	return h.SuccessResponse(c, fiber.StatusOK, "Login successful", result)
}

// ListRestaurants returns every restaurant
// @Summary List Restaurants
// @Tags Restaurants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.RestaurantDTO} "Restaurants"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /restaurants [get]
func (h *RestaurantHandler) ListRestaurants(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/restaurants")
	defer cancel()

	result, err := h.restaurantFlow.ListRestaurants(ctx)
	if err != nil {
		return h.failure(c, err, "Failed to list restaurants", "LIST_RESTAURANTS_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Restaurants retrieved successfully", result)
}

// SetOnline toggles the caller's online flag
// @Summary Set Online Status
// @Description Update the online flag of the restaurant bound to the bearer token
// @Tags Restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SetOnlineRequest true "Online flag"
// @Success 200 {object} dto.APIResponse{data=dto.SetOnlineResponse} "Status updated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /restaurants/online [put]
func (h *RestaurantHandler) SetOnline(c fiber.Ctx) error {
	restaurant, ok := middleware.GetRestaurantFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Restaurant not found", "RESTAURANT_NOT_FOUND", nil)
	}

	var req dto.SetOnlineRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.invalidBody(c, err)
	}

	if details, _ := h.validate(&req); details != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", details)
	}

	ctx, cancel := h.createRequestContext(c, "/restaurants/online")
	defer cancel()

	result, err := h.restaurantFlow.SetOnline(ctx, restaurant, &req)
	if err != nil {
		if businessflow.IsOnlineStatusRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", []string{"online is required"})
		}
		if businessflow.IsRestaurantNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Restaurant not found", "RESTAURANT_NOT_FOUND", nil)
		}
		return h.failure(c, err, "Failed to update online status", "SET_ONLINE_FAILED")
	}

	state := "offline"
	if result.Online {
		state = "online"
	}
	return h.SuccessResponse(c, fiber.StatusOK, fmt.Sprintf("Restaurant %s is now %s", result.Name, state), result)
}
