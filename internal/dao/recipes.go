package dao

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"pantry/models"
)

// Recipes is the DAO for recipe rows.
type Recipes struct {
	*Base[models.Recipe]
}

// NewRecipes builds the recipe DAO.
func NewRecipes(db *gorm.DB) *Recipes {
	return &Recipes{Base: NewBase(db, Hooks[models.Recipe]{
		SanitizeInsert: func(row *models.Recipe) {
			row.Name = strings.TrimSpace(row.Name)
			row.Description = strings.TrimSpace(row.Description)
		},
		SanitizeUpdate: func(fields map[string]any) {
			trimStringField(fields, "name")
			trimStringField(fields, "description")
		},
	})}
}

// Exists reports whether a recipe row with the given id is present.
func (d *Recipes) Exists(ctx context.Context, id uint) (bool, error) {
	count, err := d.Count(ctx, ByID(id))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByIDWithIngredients loads a recipe together with its ingredient lines
// and their ingredient rows.
func (d *Recipes) FindByIDWithIngredients(ctx context.Context, id uint) (*models.Recipe, error) {
	return d.FindByID(ctx, id, Preload("Ingredients"), Preload("Ingredients.Ingredient"))
}
