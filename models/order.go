package models

import "time"

// Order is the aggregate root every transaction record belongs to.
type Order struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	OrderNo   string     `gorm:"size:64;not null;uniqueIndex" json:"orderNo"`
	PartyName string     `gorm:"size:255;not null" json:"partyName"`
	PoNo      string     `gorm:"size:64" json:"poNo"`
	PoDate    *time.Time `json:"poDate"`
	Quality   string     `gorm:"size:255" json:"quality"`
	Status    string     `gorm:"size:32;default:pending" json:"status"` // pending | in_process | completed | delivered
}
