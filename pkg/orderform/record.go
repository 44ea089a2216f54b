// Package orderform holds the client-side core of the order transaction
// forms: grouping persisted records into editable items, the form state
// controller, and the delete-then-recreate submission protocol shared by the
// mill-input, mill-output and dispatch forms.
package orderform

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is the neutral client-side view of one persisted
// mill-input, mill-output or dispatch row. Several records may share one
// grouping key; together they form a single logical form entry.
type TransactionRecord struct {
	ID        string
	OrderID   string
	Mill      string // empty for resources without a mill component
	RefNo     string // chalan number or bill number depending on resource
	Date      string // yyyy-mm-dd
	Quantity  decimal.Decimal
	Quality   string
	Process   string
	CreatedAt time.Time
}

// GroupKey is the composite business key records are clustered by. Empty
// components are legal (degenerate keys still group, see Group).
type GroupKey struct {
	A string
	B string
}

// KeyFunc computes the grouping key of a record for one resource type.
type KeyFunc func(TransactionRecord) GroupKey

// MillInputKey groups mill inputs by mill + chalan number.
func MillInputKey(r TransactionRecord) GroupKey {
	return GroupKey{A: r.Mill, B: r.RefNo}
}

// MillOutputKey groups mill outputs by mill bill number + received date.
func MillOutputKey(r TransactionRecord) GroupKey {
	return GroupKey{A: r.RefNo, B: r.Date}
}

// DispatchKey groups dispatches by bill number + dispatch date.
func DispatchKey(r TransactionRecord) GroupKey {
	return GroupKey{A: r.RefNo, B: r.Date}
}
