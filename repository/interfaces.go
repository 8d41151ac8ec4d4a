// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/amirphl/restaurant-hub/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context, orderBy string) ([]*T, error)
	Save(ctx context.Context, entity *T) error
}

// RestaurantRepository defines operations for restaurant accounts
type RestaurantRepository interface {
	Repository[models.Restaurant]
	ByEmail(ctx context.Context, email string) (*models.Restaurant, error)
	ByFilter(ctx context.Context, filter models.RestaurantFilter) ([]*models.Restaurant, error)
	UpdateOnline(ctx context.Context, restaurantID uint, online bool) (bool, error)
	UpdatePaid(ctx context.Context, restaurantID uint, paid bool) (bool, error)
}

// ProductRepository defines operations for the shared product catalog
type ProductRepository interface {
	Repository[models.Product]
}
