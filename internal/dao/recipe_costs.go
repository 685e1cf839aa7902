package dao

import (
	"context"

	"gorm.io/gorm"
)

// RecipeCostLine is one costed ingredient line of a recipe, produced by the
// costing script rather than a mapped table.
type RecipeCostLine struct {
	RecipeID       uint    `json:"recipe_id"`
	IngredientID   uint    `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	CostPerUnit    float64 `json:"cost_per_unit"`
	LineCost       float64 `json:"line_cost"`
}

const recipeCostLinesScript = "recipe_cost_lines"

const recipeCostLinesSQL = `
SELECT ri.recipe_id,
       ri.ingredient_id,
       i.name AS ingredient_name,
       ri.quantity,
       ri.unit,
       i.cost_per_unit,
       ri.quantity * i.cost_per_unit AS line_cost
FROM recipe_ingredients ri
JOIN ingredients i ON i.id = ri.ingredient_id
WHERE ri.recipe_id = @recipe_id
ORDER BY i.name ASC`

// RecipeCosts is the read-only DAO behind the recipe costing view.
type RecipeCosts struct {
	*ReadOnly[RecipeCostLine]
}

// NewRecipeCosts builds the costing DAO with its script registered.
func NewRecipeCosts(db *gorm.DB) *RecipeCosts {
	view := &RecipeCosts{ReadOnly: NewReadOnly[RecipeCostLine](db)}
	view.RegisterScript(recipeCostLinesScript, recipeCostLinesSQL)
	return view
}

// Lines returns the costed ingredient lines for a recipe.
func (d *RecipeCosts) Lines(ctx context.Context, recipeID uint) ([]RecipeCostLine, error) {
	return d.Script(ctx, recipeCostLinesScript, map[string]any{"recipe_id": recipeID})
}

// Total sums the line costs for a recipe.
func (d *RecipeCosts) Total(ctx context.Context, recipeID uint) (float64, error) {
	lines, err := d.Lines(ctx, recipeID)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, line := range lines {
		total += line.LineCost
	}
	return total, nil
}
