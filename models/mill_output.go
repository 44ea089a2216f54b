package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MillOutput is one finished-fabric receipt row from a mill, grouped by
// millBillNo+recdDate.
type MillOutput struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	OrderID     uint            `gorm:"index;not null" json:"orderId"`
	MillBillNo  string          `gorm:"size:64" json:"millBillNo"`
	RecdDate    time.Time       `json:"recdDate"`
	FinishMtr   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"finishMtr"`
	Quality     string          `gorm:"size:255" json:"quality"`
	ProcessName string          `gorm:"size:255" json:"processName"`
}
