// Package models contains domain entities for restaurants and their product catalog
package models

// Restaurant is the single principal type of the system.
// Column names match the legacy schema so existing data can be reused.
type Restaurant struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"size:255;not null;uniqueIndex:uk_restaurants_email" json:"email"`
	PasswordHash string `gorm:"column:password;size:255;not null" json:"-"` // Never serialize password hash
	Online       bool   `gorm:"not null;default:false" json:"online"`
	Paid         bool   `gorm:"not null;default:false" json:"paid"`
}

func (Restaurant) TableName() string {
	return "Restaurants"
}

// RestaurantFilter represents filter criteria for restaurant queries
type RestaurantFilter struct {
	Email *string
}
