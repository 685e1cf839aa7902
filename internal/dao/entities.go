package dao

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"pantry/models"
)

// Entities is the DAO for vendor and customer rows.
type Entities struct {
	*Base[models.Entity]
}

// NewEntities builds the entity DAO. Names and phone numbers are trimmed and
// emails lowercased before any write.
func NewEntities(db *gorm.DB) *Entities {
	return &Entities{Base: NewBase(db, Hooks[models.Entity]{
		SanitizeInsert: func(row *models.Entity) {
			row.FName = strings.TrimSpace(row.FName)
			row.MName = strings.TrimSpace(row.MName)
			row.LName = strings.TrimSpace(row.LName)
			row.Email = strings.ToLower(strings.TrimSpace(row.Email))
			row.Phone = strings.TrimSpace(row.Phone)
			if normalized, ok := models.NormalizeEntityType(row.Type); ok {
				row.Type = normalized
			}
		},
		SanitizeUpdate: func(fields map[string]any) {
			trimStringField(fields, "fname")
			trimStringField(fields, "mname")
			trimStringField(fields, "lname")
			trimStringField(fields, "phone")
			if email, ok := fields["email"].(string); ok {
				fields["email"] = strings.ToLower(strings.TrimSpace(email))
			}
		},
	})}
}

// Exists reports whether an entity row with the given id is present.
func (d *Entities) Exists(ctx context.Context, id uint) (bool, error) {
	count, err := d.Count(ctx, ByID(id))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Vendors returns every entity of the vendor type.
func (d *Entities) Vendors(ctx context.Context) ([]models.Entity, error) {
	return d.FindAllFor(ctx, "type", models.EntityTypeVendor, OrderBy("lname asc, fname asc"))
}
