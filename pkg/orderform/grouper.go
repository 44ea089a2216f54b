package orderform

import "sort"

// GroupedItem is one logical form entry: the first-created record of a key
// plus every later record sharing that key, in encounter order.
type GroupedItem struct {
	Key        GroupKey
	Main       TransactionRecord
	Additional []TransactionRecord
}

// Group clusters flat records into logical items keyed by key(r).
//
// Records are sorted by creation timestamp ascending before grouping so the
// first-created record of each key becomes the main row no matter how the
// input was ordered; this keeps a load/submit round trip stable. Ties keep
// their input order (stable sort). Empty input yields an empty slice; the
// caller is expected to seed a blank item in that case.
//
// A record whose key components are empty still groups: a degenerate key is a
// valid key, which can merge unrelated records. The submit path refuses to
// create such records (see Validate), so they only ever arrive from data that
// predates that check.
func Group(records []TransactionRecord, key KeyFunc) []GroupedItem {
	if len(records) == 0 {
		return nil
	}
	sorted := make([]TransactionRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	index := make(map[GroupKey]int, len(sorted))
	groups := make([]GroupedItem, 0, len(sorted))
	for _, r := range sorted {
		k := key(r)
		if i, ok := index[k]; ok {
			groups[i].Additional = append(groups[i].Additional, r)
			continue
		}
		index[k] = len(groups)
		groups = append(groups, GroupedItem{Key: k, Main: r})
	}
	return groups
}
