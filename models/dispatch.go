package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dispatch is one outgoing delivery row for an order, grouped by billNo+date.
type Dispatch struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	OrderID   uint            `gorm:"index;not null" json:"orderId"`
	BillNo    string          `gorm:"size:64" json:"billNo"`
	Date      time.Time       `json:"date"`
	Mtr       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"mtr"`
	Quality   string          `gorm:"size:255" json:"quality"`
}
