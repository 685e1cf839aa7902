package dao

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"pantry/models"
)

// RecipeIngredients is the DAO for the recipe/ingredient join rows.
type RecipeIngredients struct {
	*Base[models.RecipeIngredient]
}

// NewRecipeIngredients builds the join-row DAO.
func NewRecipeIngredients(db *gorm.DB) *RecipeIngredients {
	return &RecipeIngredients{Base: NewBase(db, Hooks[models.RecipeIngredient]{
		SanitizeInsert: func(row *models.RecipeIngredient) {
			row.Unit = strings.TrimSpace(row.Unit)
		},
		SanitizeUpdate: func(fields map[string]any) {
			trimStringField(fields, "unit")
		},
	})}
}

// For returns every ingredient line of a recipe with the ingredient loaded.
func (d *RecipeIngredients) For(ctx context.Context, recipeID uint) ([]models.RecipeIngredient, error) {
	return d.FindAllFor(ctx, "recipe_id", recipeID, Preload("Ingredient"), OrderBy("ingredient_id asc"))
}

// Put upserts one line, keyed on the composite (recipe_id, ingredient_id).
func (d *RecipeIngredients) Put(ctx context.Context, row *models.RecipeIngredient) error {
	return d.Save(ctx, row, "recipe_id", "ingredient_id")
}

// Remove deletes a single line, returning it, or nil when absent.
func (d *RecipeIngredients) Remove(ctx context.Context, recipeID, ingredientID uint) (*models.RecipeIngredient, error) {
	rows, err := d.Table().Destroy(ctx, Criteria{Fields: map[string]any{
		"recipe_id":     recipeID,
		"ingredient_id": ingredientID,
	}})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
