package models

import (
	"strings"
	"time"
)

// Entity types. The column is a fixed two-value enumeration.
const (
	EntityTypeCustomer = "customer"
	EntityTypeVendor   = "vendor"
)

// Entity is a person or business the restaurant deals with: a customer or a
// vendor that ingredients are purchased from.
type Entity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FName     string    `gorm:"column:fname;not null" json:"fname"`
	MName     string    `gorm:"column:mname" json:"mname,omitempty"`
	LName     string    `gorm:"column:lname;not null" json:"lname"`
	Email     string    `gorm:"not null;index" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	Type      string    `gorm:"type:varchar(16);not null" json:"type"`
	AddressID *uint     `json:"address_id,omitempty"`
	Address   *Address  `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidEntityType reports whether value is one of the declared entity types.
func ValidEntityType(value string) bool {
	switch value {
	case EntityTypeCustomer, EntityTypeVendor:
		return true
	}
	return false
}

// NormalizeEntityType lowercases and trims the supplied value, returning the
// canonical type along with whether the input was valid.
func NormalizeEntityType(value string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if ValidEntityType(normalized) {
		return normalized, true
	}
	return "", false
}
