package models

import "time"

// Ingredient is a purchasable item priced per unit and sourced from a vendor.
type Ingredient struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Unit        string    `gorm:"not null" json:"unit"`
	CostPerUnit float64   `gorm:"not null" json:"cost_per_unit"`
	VendorID    uint      `gorm:"not null" json:"vendor_id"`
	Vendor      *Entity   `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
