package models

import (
	"time"
)

// Motorcycle represents a single catalog entry: one motorcycle listing.
type Motorcycle struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Brand       string    `gorm:"size:100;not null;index" json:"brand"`
	Model       string    `gorm:"size:100;not null" json:"model"`
	Year        int       `gorm:"not null" json:"year"`
	Price       float64   `gorm:"not null" json:"price"`
	Description string    `gorm:"size:500" json:"description"`
	ImagePath   string    `gorm:"size:200" json:"image_path"` // relative to the uploads root; empty means placeholder
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Motorcycle model
func (Motorcycle) TableName() string {
	return "motorcycles"
}
