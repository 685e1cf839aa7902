package dao

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"pantry/models"
)

// Addresses is the DAO for address rows.
type Addresses struct {
	*Base[models.Address]
}

// NewAddresses builds the address DAO.
func NewAddresses(db *gorm.DB) *Addresses {
	return &Addresses{Base: NewBase(db, Hooks[models.Address]{
		SanitizeInsert: func(row *models.Address) {
			trimAddress(row)
		},
		SanitizeUpdate: func(fields map[string]any) {
			for _, key := range []string{"address_line1", "address_line2", "city", "state", "zip_code", "country"} {
				trimStringField(fields, key)
			}
		},
	})}
}

// Exists reports whether an address row with the given id is present.
func (d *Addresses) Exists(ctx context.Context, id uint) (bool, error) {
	count, err := d.Count(ctx, ByID(id))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func trimAddress(row *models.Address) {
	for _, field := range []*string{
		&row.AddressLine1,
		&row.AddressLine2,
		&row.City,
		&row.State,
		&row.ZipCode,
		&row.Country,
	} {
		*field = strings.TrimSpace(*field)
	}
}
