package models

import "time"

// RecipeIngredient links a recipe to one of its ingredients with the
// quantity used. The pair (recipe_id, ingredient_id) is the primary key.
type RecipeIngredient struct {
	RecipeID     uint        `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	IngredientID uint        `gorm:"primaryKey;autoIncrement:false" json:"ingredient_id"`
	Quantity     float64     `gorm:"not null" json:"quantity"`
	Unit         string      `gorm:"not null" json:"unit"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
