package models

import "time"

// Address is a postal address referenced by entities.
type Address struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AddressLine1 string    `gorm:"not null" json:"address_line1"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `gorm:"not null" json:"city"`
	State        string    `gorm:"not null" json:"state"`
	ZipCode      string    `gorm:"not null" json:"zip_code"`
	Country      string    `gorm:"not null" json:"country"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
