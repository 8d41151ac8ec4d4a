// Package testing provides test utilities and database setup for testing the restaurant service
package testing

import (
	"fmt"
	"math/rand"

	"github.com/amirphl/restaurant-hub/models"
	"github.com/amirphl/restaurant-hub/utils"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext password of every restaurant created by fixtures
const TestPassword = "secret123"

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestRestaurant creates a restaurant with a random email and TestPassword as password
func (tf *TestFixtures) CreateTestRestaurant(name string) (*models.Restaurant, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	restaurant := &models.Restaurant{
		Name:         name,
		Email:        fmt.Sprintf("restaurant.%09d@example.com", rand.Intn(1000000000)),
		PasswordHash: string(hashedPassword),
	}

	if err := tf.DB.DB.Create(restaurant).Error; err != nil {
		return nil, fmt.Errorf("failed to create test restaurant: %w", err)
	}

	return restaurant, nil
}

// CreateTestProduct inserts a product with all required fields populated
func (tf *TestFixtures) CreateTestProduct(name string) (*models.Product, error) {
	product := &models.Product{
		Name:      name,
		SKUCode:   fmt.Sprintf("SKU-%06d", rand.Intn(1000000)),
		Sector:    "kitchen",
		Price:     9.5,
		Quantity:  3,
		Brand:     "House",
		Status:    true,
		Barcode:   utils.ToPtr("7891234567890"),
		CreatedAt: utils.UTCNow().Format(models.ProductTimestampLayout),
	}

	if err := tf.DB.DB.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create test product: %w", err)
	}

	return product, nil
}
