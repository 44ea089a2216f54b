package orderform

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LoadResult is what an opening form starts from.
type LoadResult struct {
	HasExisting bool
	Items       []FormItem
}

// Loader fetches an order's persisted records and turns them into editable
// form items.
type Loader struct {
	Store Store
	Key   KeyFunc
	Log   *logrus.Logger
}

func (l *Loader) logger() *logrus.Logger {
	if l.Log != nil {
		return l.Log
	}
	return logrus.StandardLogger()
}

// Load never fails: a fetch error reads as "no existing data" so the form
// stays usable offline, and the result always carries at least one item (a
// seeded blank one when nothing exists). Availability is deliberately favored
// over strict correctness here.
func (l *Loader) Load(ctx context.Context, orderID string) LoadResult {
	recs, err := l.Store.List(ctx, orderID)
	if err != nil {
		l.logger().WithField("orderId", orderID).WithError(err).Warn("record fetch failed, opening blank form")
		return LoadResult{HasExisting: false, Items: []FormItem{NewFormItem()}}
	}
	if len(recs) == 0 {
		return LoadResult{HasExisting: false, Items: []FormItem{NewFormItem()}}
	}

	groups := Group(recs, l.Key)
	items := make([]FormItem, 0, len(groups))
	for _, g := range groups {
		it := NewFormItem()
		it.Date = g.Main.Date
		it.RefNo = g.Main.RefNo
		it.Mill = g.Main.Mill
		it.Quantity = g.Main.Quantity.String()
		it.Quality = g.Main.Quality
		it.Process = g.Main.Process
		for _, r := range g.Additional {
			it.Additional = append(it.Additional, AdditionalRow{
				Quantity: r.Quantity.String(),
				Quality:  r.Quality,
				Process:  r.Process,
			})
		}
		items = append(items, it)
	}
	return LoadResult{HasExisting: true, Items: items}
}
