package models

import "time"

// Recipe is a menu item assembled from priced ingredients.
type Recipe struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	Name        string             `gorm:"not null" json:"name"`
	Description string             `gorm:"type:text" json:"description,omitempty"`
	MenuPrice   *float64           `json:"menu_price,omitempty"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
