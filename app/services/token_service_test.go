package services

import (
	"strings"
	"testing"
	"time"

	"github.com/amirphl/restaurant-hub/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-32-chars"

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTokenService(t *testing.T) (*TokenServiceImpl, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := newTokenService(config.JWTConfig{SecretKey: testSecret, Issuer: "test-issuer"}, clock.Now)
	require.NoError(t, err)
	return svc, clock
}

func TestNewTokenService(t *testing.T) {
	t.Run("RequiresSecret", func(t *testing.T) {
		svc, err := NewTokenService(config.JWTConfig{})
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("Valid", func(t *testing.T) {
		svc, err := NewTokenService(config.JWTConfig{SecretKey: testSecret})
		assert.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestIssueAndValidateToken(t *testing.T) {
	svc, clock := newTestTokenService(t)

	token, err := svc.IssueToken(42)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "eyJ"))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.RestaurantID)
	assert.NotEmpty(t, claims.TokenID)
	assert.True(t, clock.Now().Equal(claims.IssuedAt))
	assert.True(t, clock.Now().Add(time.Hour).Equal(claims.ExpiresAt))
}

func TestIssuedTokensAreDistinct(t *testing.T) {
	svc, clock := newTestTokenService(t)

	first, err := svc.IssueToken(7)
	require.NoError(t, err)
	second, err := svc.IssueToken(7)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	clock.Advance(10 * time.Minute)
	third, err := svc.IssueToken(7)
	require.NoError(t, err)

	for _, tok := range []string{first, second, third} {
		claims, err := svc.ValidateToken(tok)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.RestaurantID)
	}
}

func TestTokenNeverBindsAnotherRestaurant(t *testing.T) {
	svc, _ := newTestTokenService(t)

	for _, id := range []uint{1, 2, 3, 999999} {
		token, err := svc.IssueToken(id)
		require.NoError(t, err)
		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, id, claims.RestaurantID)
	}
}

func TestTokenExpiry(t *testing.T) {
	svc, clock := newTestTokenService(t)

	token, err := svc.IssueToken(1)
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	_, err = svc.ValidateToken(token)
	assert.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateTokenRejectsForgeries(t *testing.T) {
	svc, clock := newTestTokenService(t)

	valid, err := svc.IssueToken(5)
	require.NoError(t, err)

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	baseClaims := func(id uint) restaurantClaims {
		return restaurantClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(clock.Now()),
				ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
			},
			RestaurantID: id,
		}
	}

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	tamperedPayload := sign(jwt.SigningMethodHS256, []byte(testSecret), baseClaims(6))
	swapped := parts[0] + "." + strings.Split(tamperedPayload, ".")[1] + "." + parts[2]

	noExpiry := baseClaims(5)
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name  string
		token string
	}{
		{"Empty", ""},
		{"Garbage", "not-a-token"},
		{"TruncatedSignature", valid[:len(valid)-4]},
		{"SwappedPayload", swapped},
		{"WrongSecret", sign(jwt.SigningMethodHS256, []byte("another-secret-key-another-secret-key"), baseClaims(5))},
		{"AlgNone", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, baseClaims(5))},
		{"OtherHMAC", sign(jwt.SigningMethodHS512, []byte(testSecret), baseClaims(5))},
		{"ZeroID", sign(jwt.SigningMethodHS256, []byte(testSecret), baseClaims(0))},
		{"MissingExpiry", sign(jwt.SigningMethodHS256, []byte(testSecret), noExpiry)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
			assert.Nil(t, claims)
		})
	}
}
