package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MillInput is one grey-fabric delivery row sent to a mill for an order.
// Several rows may share the same mill+chalanNo pair; together they form one
// logical form entry (first created row is the main one).
type MillInput struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	OrderID     uint            `gorm:"index;not null" json:"orderId"`
	Mill        string          `gorm:"size:255" json:"mill"`
	ChalanNo    string          `gorm:"size:64" json:"chalanNo"`
	Date        time.Time       `json:"date"`
	GreyMtr     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"greyMtr"`
	Quality     string          `gorm:"size:255" json:"quality"`
	ProcessName string          `gorm:"size:255" json:"processName"`
}
