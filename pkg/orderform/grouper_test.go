package orderform

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var baseTime = time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

func rec(id, mill, ref, qty string, createdOffset int) TransactionRecord {
	return TransactionRecord{
		ID:        id,
		OrderID:   "1",
		Mill:      mill,
		RefNo:     ref,
		Date:      "2026-01-05",
		Quantity:  decimal.RequireFromString(qty),
		CreatedAt: baseTime.Add(time.Duration(createdOffset) * time.Second),
	}
}

func TestGroupRoundTripCounts(t *testing.T) {
	records := []TransactionRecord{
		rec("1", "millA", "C100", "100", 0),
		rec("2", "millA", "C100", "50", 1),
		rec("3", "millB", "C100", "30", 2),
		rec("4", "millA", "C200", "20", 3),
		rec("5", "millB", "C100", "10", 4),
	}
	groups := Group(records, MillInputKey)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups got %d", len(groups))
	}
	total := 0
	for _, g := range groups {
		total += 1 + len(g.Additional)
	}
	if total != len(records) {
		t.Fatalf("row count mismatch: grouped %d input %d", total, len(records))
	}
}

func TestGroupFirstCreatedBecomesMain(t *testing.T) {
	// deliberately out of creation order
	records := []TransactionRecord{
		rec("2", "millA", "C100", "50", 5),
		rec("1", "millA", "C100", "100", 0),
	}
	groups := Group(records, MillInputKey)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group got %d", len(groups))
	}
	if groups[0].Main.ID != "1" {
		t.Fatalf("expected first-created record as main, got id=%s", groups[0].Main.ID)
	}
	if len(groups[0].Additional) != 1 || groups[0].Additional[0].ID != "2" {
		t.Fatalf("unexpected additional rows: %+v", groups[0].Additional)
	}
}

func TestGroupPermutationStability(t *testing.T) {
	records := []TransactionRecord{
		rec("1", "millA", "C100", "100", 0),
		rec("2", "millA", "C100", "50", 1),
		rec("3", "millB", "C300", "30", 2),
		rec("4", "millA", "C200", "20", 3),
		rec("5", "millB", "C300", "10", 4),
		rec("6", "millB", "C300", "5", 5),
	}
	want := Group(records, MillInputKey)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]TransactionRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := Group(shuffled, MillInputKey)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("permutation %d changed grouping:\n got %+v\nwant %+v", i, got, want)
		}
	}
}

func TestGroupEmptyInput(t *testing.T) {
	if got := Group(nil, MillInputKey); len(got) != 0 {
		t.Fatalf("expected no groups for empty input, got %d", len(got))
	}
}

func TestGroupDegenerateKeyStillGroups(t *testing.T) {
	// Records with empty key components merge into one group; tolerated on
	// read, refused on write by validation.
	records := []TransactionRecord{
		rec("1", "", "", "100", 0),
		rec("2", "", "", "50", 1),
	}
	groups := Group(records, MillInputKey)
	if len(groups) != 1 {
		t.Fatalf("expected degenerate keys to merge into 1 group, got %d", len(groups))
	}
	if len(groups[0].Additional) != 1 {
		t.Fatalf("expected 1 additional row, got %d", len(groups[0].Additional))
	}
}

func TestMillOutputKeyUsesBillAndDate(t *testing.T) {
	a := TransactionRecord{RefNo: "B1", Date: "2026-01-05"}
	b := TransactionRecord{RefNo: "B1", Date: "2026-01-06"}
	if MillOutputKey(a) == MillOutputKey(b) {
		t.Fatal("different dates must produce different keys")
	}
	if MillOutputKey(a) != (GroupKey{A: "B1", B: "2026-01-05"}) {
		t.Fatalf("unexpected key %+v", MillOutputKey(a))
	}
}
