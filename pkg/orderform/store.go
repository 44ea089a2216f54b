package orderform

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Store is the persistence boundary for one transaction resource. The HTTP
// implementation lives in pkg/orderapi; tests use in-memory doubles.
type Store interface {
	List(ctx context.Context, orderID string) ([]TransactionRecord, error)
	Create(ctx context.Context, rec TransactionRecord) (TransactionRecord, error)
	Delete(ctx context.Context, id string) error
}

// ExpandItems flattens form items into the records a submission will create:
// one record per main row plus one per additional row, the additional ones
// inheriting the main row's key fields and date. N additional rows on an item
// therefore produce N+1 records sharing one grouping key.
//
// Quantities are assumed validated; unparseable ones come out as zero.
func ExpandItems(orderID string, items []FormItem) []TransactionRecord {
	var recs []TransactionRecord
	for _, it := range items {
		main := TransactionRecord{
			OrderID:  orderID,
			Mill:     it.Mill,
			RefNo:    it.RefNo,
			Date:     it.Date,
			Quantity: parseQuantity(it.Quantity),
			Quality:  it.Quality,
			Process:  it.Process,
		}
		recs = append(recs, main)
		for _, row := range it.Additional {
			recs = append(recs, TransactionRecord{
				OrderID:  orderID,
				Mill:     it.Mill,
				RefNo:    it.RefNo,
				Date:     it.Date,
				Quantity: parseQuantity(row.Quantity),
				Quality:  row.Quality,
				Process:  row.Process,
			})
		}
	}
	return recs
}

func parseQuantity(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
