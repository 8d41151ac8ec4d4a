package businessflow_test

import (
	"context"
	"sync"
	"testing"

	"github.com/amirphl/restaurant-hub/app/services"
	businessflow "github.com/amirphl/restaurant-hub/business_flow"
	"github.com/amirphl/restaurant-hub/config"
	"github.com/amirphl/restaurant-hub/repository"
	testingutil "github.com/amirphl/restaurant-hub/testing"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

type recordingPublisher struct {
	mu     sync.Mutex
	events []services.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event services.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

type memoryLimiter struct {
	mu       sync.Mutex
	max      int
	failures map[string]int
}

func newMemoryLimiter(max int) *memoryLimiter {
	return &memoryLimiter{max: max, failures: map[string]int{}}
}

func (l *memoryLimiter) Blocked(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures[key] >= l.max, nil
}

func (l *memoryLimiter) RecordFailure(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[key]++
	return nil
}

func (l *memoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, key)
	return nil
}

type flowDeps struct {
	restaurantRepo repository.RestaurantRepository
	productRepo    repository.ProductRepository
	hasher         services.PasswordHasher
	tokens         services.TokenService
	limiter        services.LoginAttemptLimiter
	events         *recordingPublisher
}

func newFlowDeps(t *testing.T, testDB *testingutil.TestDB) *flowDeps {
	t.Helper()

	hasher, err := services.NewBcryptPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	tokens, err := services.NewTokenService(config.JWTConfig{SecretKey: testJWTSecret, Issuer: "test"})
	require.NoError(t, err)

	return &flowDeps{
		restaurantRepo: repository.NewRestaurantRepository(testDB.DB),
		productRepo:    repository.NewProductRepository(testDB.DB),
		hasher:         hasher,
		tokens:         tokens,
		limiter:        services.NoopLoginAttemptLimiter{},
		events:         &recordingPublisher{},
	}
}

func (d *flowDeps) restaurantFlow(testDB *testingutil.TestDB) businessflow.RestaurantFlow {
	return businessflow.NewRestaurantFlow(d.restaurantRepo, d.hasher, d.tokens, d.limiter, d.events, testDB.DB)
}
