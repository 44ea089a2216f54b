package orderform

import (
	"context"
	"errors"
	"testing"
)

func TestLoadZeroRecordsSeedsBlankItem(t *testing.T) {
	store := newFakeStore()
	loader := &Loader{Store: store, Key: MillInputKey}
	ld := loader.Load(context.Background(), "1")
	if ld.HasExisting {
		t.Fatal("no records must read as hasExisting=false")
	}
	if len(ld.Items) != 1 {
		t.Fatalf("loader must seed exactly one blank item, got %d", len(ld.Items))
	}
	if ld.Items[0].RefNo != "" || ld.Items[0].Quantity != "" {
		t.Fatalf("seeded item not blank: %+v", ld.Items[0])
	}
}

func TestLoadFetchFailureReadsAsNoData(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("connection refused")
	loader := &Loader{Store: store, Key: MillInputKey}
	ld := loader.Load(context.Background(), "1")
	if ld.HasExisting {
		t.Fatal("fetch failure must read as hasExisting=false")
	}
	if len(ld.Items) != 1 {
		t.Fatalf("loader must still seed one item, got %d", len(ld.Items))
	}
}

func TestLoadGroupsIntoFormItems(t *testing.T) {
	store := newFakeStore(
		rec("", "millA", "C100", "100", 0),
		rec("", "millA", "C100", "50", 1),
		rec("", "millB", "C200", "30", 2),
	)
	loader := &Loader{Store: store, Key: MillInputKey}
	ld := loader.Load(context.Background(), "1")
	if !ld.HasExisting {
		t.Fatal("expected hasExisting=true")
	}
	if len(ld.Items) != 2 {
		t.Fatalf("expected 2 items got %d", len(ld.Items))
	}
	first := ld.Items[0]
	if first.Mill != "millA" || first.RefNo != "C100" || first.Quantity != "100" {
		t.Fatalf("main row copied wrong: %+v", first)
	}
	if len(first.Additional) != 1 || first.Additional[0].Quantity != "50" {
		t.Fatalf("additional rows copied wrong: %+v", first.Additional)
	}
	if ld.Items[1].Mill != "millB" || len(ld.Items[1].Additional) != 0 {
		t.Fatalf("second item wrong: %+v", ld.Items[1])
	}
}
