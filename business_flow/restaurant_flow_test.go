package businessflow_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/amirphl/restaurant-hub/app/dto"
	"github.com/amirphl/restaurant-hub/app/services"
	businessflow "github.com/amirphl/restaurant-hub/business_flow"
	"github.com/amirphl/restaurant-hub/models"
	"github.com/amirphl/restaurant-hub/repository"
	testingutil "github.com/amirphl/restaurant-hub/testing"
	"github.com/amirphl/restaurant-hub/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blindEmailRepo hides existing emails from the pre-check so the unique index is exercised
type blindEmailRepo struct {
	repository.RestaurantRepository
}

func (blindEmailRepo) ByEmail(context.Context, string) (*models.Restaurant, error) {
	return nil, nil
}

func TestRegister(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		deps := newFlowDeps(t, testDB)
		flow := deps.restaurantFlow(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("Success", func(t *testing.T) {
			resp, err := flow.Register(ctx, &dto.RegisterRequest{Name: "Pizza Co", Email: "a@x.com", Password: "secret123"}, nil)
			require.NoError(t, err)
			assert.NotZero(t, resp.ID)
			assert.Equal(t, "Pizza Co", resp.Name)
			assert.False(t, resp.Online)
			assert.False(t, resp.Paid)

			stored, err := deps.restaurantRepo.ByID(ctx, resp.ID)
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.NotEqual(t, "secret123", stored.PasswordHash)
			assert.True(t, deps.hasher.Verify("secret123", stored.PasswordHash))
			assert.Contains(t, deps.events.Types(), services.EventRestaurantRegistered)
		})

		t.Run("MissingFields", func(t *testing.T) {
			cases := []dto.RegisterRequest{
				{Email: "b@x.com", Password: "secret123"},
				{Name: "B", Password: "secret123"},
				{Name: "B", Email: "b@x.com"},
				{Name: "   ", Email: "b@x.com", Password: "secret123"},
			}
			for i, req := range cases {
				t.Run(fmt.Sprint(i), func(t *testing.T) {
					_, err := flow.Register(ctx, &req, nil)
					assert.True(t, businessflow.IsMissingRegistrationFields(err))
					assert.Equal(t, businessflow.KindValidation, businessflow.KindOf(err))
				})
			}
		})

		t.Run("PasswordTooLong", func(t *testing.T) {
			_, err := flow.Register(ctx, &dto.RegisterRequest{Name: "Long", Email: "long@x.com", Password: strings.Repeat("p", 73)}, nil)
			assert.True(t, businessflow.IsPasswordTooLong(err))
			assert.Equal(t, businessflow.KindValidation, businessflow.KindOf(err))
		})

		t.Run("DuplicateEmail", func(t *testing.T) {
			_, err := flow.Register(ctx, &dto.RegisterRequest{Name: "Dup", Email: "dup@x.com", Password: "secret123"}, nil)
			require.NoError(t, err)

			_, err = flow.Register(ctx, &dto.RegisterRequest{Name: "Dup 2", Email: "dup@x.com", Password: "other-pass"}, nil)
			assert.True(t, businessflow.IsEmailAlreadyRegistered(err))
			assert.Equal(t, businessflow.KindConflict, businessflow.KindOf(err))
		})

		t.Run("DuplicateEmailCaughtByUniqueIndex", func(t *testing.T) {
			blind := businessflow.NewRestaurantFlow(blindEmailRepo{deps.restaurantRepo}, deps.hasher, deps.tokens, deps.limiter, deps.events, testDB.DB)

			_, err := blind.Register(ctx, &dto.RegisterRequest{Name: "Race", Email: "race@x.com", Password: "secret123"}, nil)
			require.NoError(t, err)

			_, err = blind.Register(ctx, &dto.RegisterRequest{Name: "Race 2", Email: "race@x.com", Password: "secret123"}, nil)
			assert.True(t, businessflow.IsEmailAlreadyRegistered(err))

			matches, err := deps.restaurantRepo.ByFilter(ctx, models.RestaurantFilter{Email: utils.ToPtr("race@x.com")})
			require.NoError(t, err)
			assert.Len(t, matches, 1)
		})

		t.Run("ConcurrentRegistrationsSameEmail", func(t *testing.T) {
			const n = 5
			var wg sync.WaitGroup
			errs := make([]error, n)
			for i := range n {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, errs[i] = flow.Register(ctx, &dto.RegisterRequest{Name: fmt.Sprintf("C%d", i), Email: "concurrent@x.com", Password: "secret123"}, nil)
				}(i)
			}
			wg.Wait()

			successes := 0
			for _, err := range errs {
				if err == nil {
					successes++
					continue
				}
				assert.True(t, businessflow.IsEmailAlreadyRegistered(err), "unexpected error: %v", err)
			}
			assert.Equal(t, 1, successes)
		})

		t.Run("EmailIsCaseSensitive", func(t *testing.T) {
			_, err := flow.Register(ctx, &dto.RegisterRequest{Name: "Lower", Email: "case@x.com", Password: "secret123"}, nil)
			require.NoError(t, err)
			_, err = flow.Register(ctx, &dto.RegisterRequest{Name: "Upper", Email: "CASE@x.com", Password: "secret123"}, nil)
			assert.NoError(t, err)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		deps := newFlowDeps(t, testDB)
		flow := deps.restaurantFlow(testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		restaurant, err := fixtures.CreateTestRestaurant("Pizza Co")
		require.NoError(t, err)

		t.Run("Success", func(t *testing.T) {
			resp, err := flow.Login(ctx, &dto.LoginRequest{Email: restaurant.Email, Password: testingutil.TestPassword}, nil)
			require.NoError(t, err)
			assert.Equal(t, utils.TokenTypeBearer, resp.TokenType)
			assert.Equal(t, 3600, resp.ExpiresIn)
			assert.Equal(t, dto.RestaurantPublicDTO{ID: restaurant.ID, Name: "Pizza Co", Online: false}, resp.Restaurant)

			claims, err := deps.tokens.ValidateToken(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, restaurant.ID, claims.RestaurantID)
		})

		t.Run("WrongPasswordAndUnknownEmailAreIndistinguishable", func(t *testing.T) {
			_, wrongPassword := flow.Login(ctx, &dto.LoginRequest{Email: restaurant.Email, Password: "wrong-password"}, nil)
			_, unknownEmail := flow.Login(ctx, &dto.LoginRequest{Email: "nobody@x.com", Password: testingutil.TestPassword}, nil)

			require.Error(t, wrongPassword)
			require.Error(t, unknownEmail)
			assert.True(t, businessflow.IsInvalidCredentials(wrongPassword))
			assert.True(t, businessflow.IsInvalidCredentials(unknownEmail))
			assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
			assert.Equal(t, businessflow.KindAuthentication, businessflow.KindOf(wrongPassword))
		})

		t.Run("CorruptedDigestFailsClosed", func(t *testing.T) {
			broken, err := fixtures.CreateTestRestaurant("Broken")
			require.NoError(t, err)
			require.NoError(t, testDB.DB.Model(&models.Restaurant{}).Where("id = ?", broken.ID).Update("password", "not-a-digest").Error)

			_, err = flow.Login(ctx, &dto.LoginRequest{Email: broken.Email, Password: testingutil.TestPassword}, nil)
			assert.True(t, businessflow.IsInvalidCredentials(err))
		})

		t.Run("BlockedAfterTooManyFailures", func(t *testing.T) {
			limiter := newMemoryLimiter(2)
			limited := businessflow.NewRestaurantFlow(deps.restaurantRepo, deps.hasher, deps.tokens, limiter, deps.events, testDB.DB)

			for range 2 {
				_, err := limited.Login(ctx, &dto.LoginRequest{Email: restaurant.Email, Password: "wrong-password"}, nil)
				require.True(t, businessflow.IsInvalidCredentials(err))
			}

			_, err := limited.Login(ctx, &dto.LoginRequest{Email: restaurant.Email, Password: testingutil.TestPassword}, nil)
			assert.True(t, businessflow.IsTooManyLoginAttempts(err))
			assert.Equal(t, businessflow.KindRateLimited, businessflow.KindOf(err))

			require.NoError(t, limiter.Reset(ctx, services.LoginAttemptKey(restaurant.Email, "")))
			_, err = limited.Login(ctx, &dto.LoginRequest{Email: restaurant.Email, Password: testingutil.TestPassword}, nil)
			assert.NoError(t, err)
		})

		t.Run("LockoutIsPerClientAddress", func(t *testing.T) {
			limiter := newMemoryLimiter(2)
			limited := businessflow.NewRestaurantFlow(deps.restaurantRepo, deps.hasher, deps.tokens, limiter, deps.events, testDB.DB)
			attacker := businessflow.NewClientMetadata("203.0.113.9", "curl")
			owner := businessflow.NewClientMetadata("198.51.100.7", "browser")

			for range 2 {
				_, err := limited.Login(ctx, &dto.LoginRequest{Email: restaurant.Email, Password: "wrong-password"}, attacker)
				require.True(t, businessflow.IsInvalidCredentials(err))
			}

			_, err := limited.Login(ctx, &dto.LoginRequest{Email: restaurant.Email, Password: testingutil.TestPassword}, attacker)
			assert.True(t, businessflow.IsTooManyLoginAttempts(err))

			resp, err := limited.Login(ctx, &dto.LoginRequest{Email: restaurant.Email, Password: testingutil.TestPassword}, owner)
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Token)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestListRestaurantsAndSetOnline(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		deps := newFlowDeps(t, testDB)
		flow := deps.restaurantFlow(testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		a, err := fixtures.CreateTestRestaurant("A")
		require.NoError(t, err)
		b, err := fixtures.CreateTestRestaurant("B")
		require.NoError(t, err)

		t.Run("ListOrderedByID", func(t *testing.T) {
			list, err := flow.ListRestaurants(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, a.ID, list[0].ID)
			assert.Equal(t, b.ID, list[1].ID)
			assert.Equal(t, a.Email, list[0].Email)
		})

		t.Run("SetOnlineOnlyAffectsCaller", func(t *testing.T) {
			resp, err := flow.SetOnline(ctx, a, &dto.SetOnlineRequest{Online: utils.ToPtr(true)})
			require.NoError(t, err)
			assert.True(t, resp.Online)
			assert.Contains(t, deps.events.Types(), services.EventRestaurantOnlineChanged)

			storedA, err := deps.restaurantRepo.ByID(ctx, a.ID)
			require.NoError(t, err)
			storedB, err := deps.restaurantRepo.ByID(ctx, b.ID)
			require.NoError(t, err)
			assert.True(t, storedA.Online)
			assert.False(t, storedB.Online)

			resp, err = flow.SetOnline(ctx, a, &dto.SetOnlineRequest{Online: utils.ToPtr(false)})
			require.NoError(t, err)
			assert.False(t, resp.Online)
		})

		t.Run("OnlineRequired", func(t *testing.T) {
			_, err := flow.SetOnline(ctx, a, &dto.SetOnlineRequest{})
			assert.True(t, businessflow.IsOnlineStatusRequired(err))
			assert.Equal(t, businessflow.KindValidation, businessflow.KindOf(err))
		})

		t.Run("DeletedRestaurant", func(t *testing.T) {
			ghost := &models.Restaurant{ID: 999999, Name: "Ghost"}
			_, err := flow.SetOnline(ctx, ghost, &dto.SetOnlineRequest{Online: utils.ToPtr(true)})
			assert.True(t, businessflow.IsRestaurantNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}
