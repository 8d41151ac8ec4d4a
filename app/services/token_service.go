// Package services provides technical concerns like tokens, password hashing, rate limiting and event publishing
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirphl/restaurant-hub/config"
	"github.com/amirphl/restaurant-hub/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token service error constants
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenService handles JWT token generation and validation
type TokenService interface {
	IssueToken(restaurantID uint) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
}

// TokenClaims represents the verified claims of an access token
type TokenClaims struct {
	RestaurantID uint
	TokenID      string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// restaurantClaims is the wire form of an access token. Only the identifier is
// carried; profile data is always read from the store.
type restaurantClaims struct {
	jwt.RegisteredClaims
	RestaurantID uint `json:"id"`
}

// TokenServiceImpl implements TokenService with HS256
type TokenServiceImpl struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService creates a new token service. The secret is copied once and
// never changes for the lifetime of the service.
func NewTokenService(cfg config.JWTConfig) (TokenService, error) {
	svc, err := newTokenService(cfg, utils.UTCNow)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func newTokenService(cfg config.JWTConfig, now func() time.Time) (*TokenServiceImpl, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("secret key is required")
	}

	return &TokenServiceImpl{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		ttl:       utils.AccessTokenTTL,
		now:       now,
	}, nil
}

// IssueToken signs an access token bound to restaurantID with an absolute expiry
func (s *TokenServiceImpl) IssueToken(restaurantID uint) (string, error) {
	now := s.now()

	claims := restaurantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		RestaurantID: restaurantID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken verifies signature and expiry and returns the bound claims.
// Expiry is reported as ErrTokenExpired; every other failure as ErrTokenInvalid.
func (s *TokenServiceImpl) ValidateToken(token string) (*TokenClaims, error) {
	var claims restaurantClaims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)

	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !parsed.Valid || claims.RestaurantID == 0 || claims.IssuedAt == nil {
		return nil, ErrTokenInvalid
	}

	return &TokenClaims{
		RestaurantID: claims.RestaurantID,
		TokenID:      claims.ID,
		IssuedAt:     claims.IssuedAt.Time,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}
