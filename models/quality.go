package models

import "time"

// Quality is a lookup row for the fabric quality dropdowns.
type Quality struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
}
