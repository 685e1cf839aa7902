package dao

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"pantry/models"
)

// Ingredients is the DAO for ingredient rows.
type Ingredients struct {
	*Base[models.Ingredient]
}

// NewIngredients builds the ingredient DAO. Names and units are trimmed of
// surrounding whitespace before any write.
func NewIngredients(db *gorm.DB) *Ingredients {
	return &Ingredients{Base: NewBase(db, Hooks[models.Ingredient]{
		SanitizeInsert: func(row *models.Ingredient) {
			row.Name = strings.TrimSpace(row.Name)
			row.Unit = strings.TrimSpace(row.Unit)
		},
		SanitizeUpdate: func(fields map[string]any) {
			trimStringField(fields, "name")
			trimStringField(fields, "unit")
		},
	})}
}

// ForVendor returns every ingredient supplied by the given vendor.
func (d *Ingredients) ForVendor(ctx context.Context, vendorID uint) ([]models.Ingredient, error) {
	return d.FindAllFor(ctx, "vendor_id", vendorID, OrderBy("name asc"))
}

func trimStringField(fields map[string]any, key string) {
	if value, ok := fields[key].(string); ok {
		fields[key] = strings.TrimSpace(value)
	}
}
