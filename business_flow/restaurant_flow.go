package businessflow

import (
	"context"
	"errors"
	"strings"

	"github.com/amirphl/restaurant-hub/app/dto"
	"github.com/amirphl/restaurant-hub/app/services"
	"github.com/amirphl/restaurant-hub/logging"
	"github.com/amirphl/restaurant-hub/models"
	"github.com/amirphl/restaurant-hub/repository"
	"github.com/amirphl/restaurant-hub/utils"
	"gorm.io/gorm"
)

// RestaurantFlow handles restaurant account registration, authentication and visibility
type RestaurantFlow interface {
	Register(ctx context.Context, req *dto.RegisterRequest, metadata *ClientMetadata) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	ListRestaurants(ctx context.Context) ([]dto.RestaurantDTO, error)
	SetOnline(ctx context.Context, restaurant *models.Restaurant, req *dto.SetOnlineRequest) (*dto.SetOnlineResponse, error)
}

// RestaurantFlowImpl implements the restaurant business flow
type RestaurantFlowImpl struct {
	restaurantRepo repository.RestaurantRepository
	hasher         services.PasswordHasher
	tokenService   services.TokenService
	limiter        services.LoginAttemptLimiter
	events         services.EventPublisher
	db             *gorm.DB
}

// NewRestaurantFlow creates a new restaurant flow instance
func NewRestaurantFlow(
	restaurantRepo repository.RestaurantRepository,
	hasher services.PasswordHasher,
	tokenService services.TokenService,
	limiter services.LoginAttemptLimiter,
	events services.EventPublisher,
	db *gorm.DB,
) RestaurantFlow {
	return &RestaurantFlowImpl{
		restaurantRepo: restaurantRepo,
		hasher:         hasher,
		tokenService:   tokenService,
		limiter:        limiter,
		events:         events,
		db:             db,
	}
}

// Register creates a restaurant with online and paid both false. The email
// pre-check is advisory; the unique index decides concurrent registrations.
func (f *RestaurantFlowImpl) Register(ctx context.Context, req *dto.RegisterRequest, metadata *ClientMetadata) (*dto.RegisterResponse, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, NewBusinessError("REGISTER_VALIDATION_FAILED", "Register validation failed", ErrMissingRegistrationFields)
	}

	digest, err := f.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, services.ErrPasswordTooLong) {
			return nil, NewBusinessError("REGISTER_VALIDATION_FAILED", "Register validation failed", ErrPasswordTooLong)
		}
		return nil, NewBusinessError("REGISTER_FAILED", "Register failed", err)
	}

	restaurant := &models.Restaurant{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: digest,
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		existing, err := f.restaurantRepo.ByEmail(txCtx, req.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailAlreadyRegistered
		}

		if err := f.restaurantRepo.Save(txCtx, restaurant); err != nil {
			if repository.IsDuplicateKey(err) {
				return ErrEmailAlreadyRegistered
			}
			return err
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrEmailAlreadyRegistered) && repository.IsDuplicateKey(err) {
			err = ErrEmailAlreadyRegistered
		}
		return nil, NewBusinessError("REGISTER_FAILED", "Register failed", err)
	}

	logging.FromContext(ctx).InfoContext(ctx, "restaurant registered",
		append([]any{"restaurant_id", restaurant.ID}, metadata.logAttrs()...)...)

	resp := &dto.RegisterResponse{
		ID:     restaurant.ID,
		Name:   restaurant.Name,
		Online: restaurant.Online,
		Paid:   restaurant.Paid,
	}
	publish(ctx, f.events, services.EventRestaurantRegistered, restaurant.ID, resp)

	return resp, nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password produce the same error after the same amount of hashing work.
func (f *RestaurantFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", ErrInvalidCredentials)
	}

	logger := logging.FromContext(ctx)
	attemptKey := services.LoginAttemptKey(req.Email, metadata.clientIP())

	blocked, err := f.limiter.Blocked(ctx, attemptKey)
	if err != nil {
		logger.WarnContext(ctx, "login limiter unavailable", "error", err)
	}
	if blocked {
		return nil, NewBusinessError("LOGIN_BLOCKED", "Login blocked", ErrTooManyLoginAttempts)
	}

	restaurant, err := f.restaurantRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}

	if restaurant == nil {
		f.hasher.SimulateVerify(req.Password)
		f.recordFailure(ctx, attemptKey)
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", ErrInvalidCredentials)
	}

	if !f.hasher.Verify(req.Password, restaurant.PasswordHash) {
		f.recordFailure(ctx, attemptKey)
		logger.InfoContext(ctx, "login rejected",
			append([]any{"restaurant_id", restaurant.ID}, metadata.logAttrs()...)...)
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", ErrInvalidCredentials)
	}

	if err := f.limiter.Reset(ctx, attemptKey); err != nil {
		logger.WarnContext(ctx, "failed to reset login attempts", "error", err)
	}

	token, err := f.tokenService.IssueToken(restaurant.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_ISSUE_FAILED", "Token issue failed", err)
	}

	return &dto.LoginResponse{
		Token:      token,
		TokenType:  utils.TokenTypeBearer,
		ExpiresIn:  utils.AccessTokenTTLSeconds,
		Restaurant: ToRestaurantPublicDTO(*restaurant),
	}, nil
}

func (f *RestaurantFlowImpl) recordFailure(ctx context.Context, attemptKey string) {
	if err := f.limiter.RecordFailure(ctx, attemptKey); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "failed to record login failure", "error", err)
	}
}

// ListRestaurants returns every restaurant ordered by id
func (f *RestaurantFlowImpl) ListRestaurants(ctx context.Context) ([]dto.RestaurantDTO, error) {
	restaurants, err := f.restaurantRepo.ByFilter(ctx, models.RestaurantFilter{})
	if err != nil {
		return nil, NewBusinessError("LIST_RESTAURANTS_FAILED", "List restaurants failed", err)
	}

	result := make([]dto.RestaurantDTO, 0, len(restaurants))
	for _, r := range restaurants {
		result = append(result, ToRestaurantDTO(*r))
	}
	return result, nil
}

// SetOnline updates the visibility of the bound restaurant only
func (f *RestaurantFlowImpl) SetOnline(ctx context.Context, restaurant *models.Restaurant, req *dto.SetOnlineRequest) (*dto.SetOnlineResponse, error) {
	if restaurant == nil {
		return nil, NewBusinessError("SET_ONLINE_FAILED", "Set online failed", ErrRestaurantNotFound)
	}
	if req == nil || req.Online == nil {
		return nil, NewBusinessError("SET_ONLINE_VALIDATION_FAILED", "Set online validation failed", ErrOnlineStatusRequired)
	}

	updated, err := f.restaurantRepo.UpdateOnline(ctx, restaurant.ID, *req.Online)
	if err != nil {
		return nil, NewBusinessError("SET_ONLINE_FAILED", "Set online failed", err)
	}
	if !updated {
		return nil, NewBusinessError("SET_ONLINE_FAILED", "Set online failed", ErrRestaurantNotFound)
	}

	restaurant.Online = *req.Online

	resp := &dto.SetOnlineResponse{
		ID:     restaurant.ID,
		Name:   restaurant.Name,
		Online: restaurant.Online,
	}
	publish(ctx, f.events, services.EventRestaurantOnlineChanged, restaurant.ID, resp)

	return resp, nil
}
