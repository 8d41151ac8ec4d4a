// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/restaurant-hub/models"
	"gorm.io/gorm"
)

// RestaurantRepositoryImpl implements RestaurantRepository interface
type RestaurantRepositoryImpl struct {
	*BaseRepository[models.Restaurant]
}

// NewRestaurantRepository creates a new restaurant repository
func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &RestaurantRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Restaurant](db),
	}
}

// ByEmail retrieves a restaurant by exact (case-sensitive) email match
func (r *RestaurantRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.Restaurant, error) {
	restaurants, err := r.ByFilter(ctx, models.RestaurantFilter{Email: &email})
	if err != nil {
		return nil, fmt.Errorf("failed to find restaurant by email: %w", err)
	}

	if len(restaurants) == 0 {
		return nil, nil
	}

	return restaurants[0], nil
}

// ByFilter retrieves restaurants matching every non-nil filter field, ordered by id
func (r *RestaurantRepositoryImpl) ByFilter(ctx context.Context, filter models.RestaurantFilter) ([]*models.Restaurant, error) {
	db := r.getDB(ctx)

	query := db.Model(&models.Restaurant{})
	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}

	var restaurants []*models.Restaurant
	if err := query.Order("id ASC").Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("failed to find restaurants by filter: %w", err)
	}

	return restaurants, nil
}

// UpdateOnline sets the visibility flag of a single restaurant
func (r *RestaurantRepositoryImpl) UpdateOnline(ctx context.Context, restaurantID uint, online bool) (bool, error) {
	return r.updateColumn(ctx, restaurantID, "online", online)
}

// UpdatePaid sets the payment flag of a single restaurant
func (r *RestaurantRepositoryImpl) UpdatePaid(ctx context.Context, restaurantID uint, paid bool) (bool, error) {
	return r.updateColumn(ctx, restaurantID, "paid", paid)
}
