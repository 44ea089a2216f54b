package models

import "time"

// Mill is a lookup row for the processing-mill dropdowns.
type Mill struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Name          string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	ContactPerson string    `gorm:"size:255" json:"contactPerson"`
	Address       string    `gorm:"size:512" json:"address"`
}
