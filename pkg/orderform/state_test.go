package orderform

import "testing"

func TestNewFormStateSeedsOneBlankItem(t *testing.T) {
	st := NewFormState()
	if len(st.Items) != 1 {
		t.Fatalf("expected 1 seeded item got %d", len(st.Items))
	}
	if st.Items[0].ID == "" {
		t.Fatal("seeded item has no local id")
	}
	if len(st.Items[0].Additional) != 0 {
		t.Fatal("seeded item should have no additional rows")
	}
}

func TestRemoveLastItemIsNoop(t *testing.T) {
	st := NewFormState()
	if st.RemoveItem(st.Items[0].ID) {
		t.Fatal("removing the only item must be refused")
	}
	if len(st.Items) != 1 {
		t.Fatalf("non-empty invariant broken: %d items", len(st.Items))
	}
}

func TestAddRemoveKeepsIdsUnique(t *testing.T) {
	st := NewFormState()
	seen := map[string]bool{st.Items[0].ID: true}
	// add/remove cycles must never reuse an id (the length-based scheme did)
	for i := 0; i < 10; i++ {
		id := st.AddItem()
		if seen[id] {
			t.Fatalf("duplicate item id %q after add/remove cycle", id)
		}
		seen[id] = true
		if !st.RemoveItem(id) {
			t.Fatalf("failed to remove item %q", id)
		}
	}
	if len(st.Items) < 1 {
		t.Fatal("non-empty invariant broken")
	}
}

func TestUpdateFieldUnknown(t *testing.T) {
	st := NewFormState()
	if err := st.UpdateField(st.Items[0].ID, "color", "blue"); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if err := st.UpdateField("nope", FieldDate, "2026-01-05"); err == nil {
		t.Fatal("expected error for unknown item id")
	}
}

func TestUpdateFieldReplacesValue(t *testing.T) {
	st := NewFormState()
	id := st.Items[0].ID
	if err := st.UpdateField(id, FieldQuantity, "120"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if st.Items[0].Quantity != "120" {
		t.Fatalf("expected quantity 120 got %q", st.Items[0].Quantity)
	}
}

func TestAdditionalRowIndexShift(t *testing.T) {
	st := NewFormState()
	id := st.Items[0].ID
	for i := 0; i < 3; i++ {
		if err := st.AddAdditionalRow(id); err != nil {
			t.Fatalf("add row: %v", err)
		}
	}
	for i, q := range []string{"10", "20", "30"} {
		if err := st.UpdateAdditionalRow(id, i, FieldQuantity, q); err != nil {
			t.Fatalf("update row %d: %v", i, err)
		}
	}
	if err := st.RemoveAdditionalRow(id, 1); err != nil {
		t.Fatalf("remove row: %v", err)
	}
	rows := st.Items[0].Additional
	if len(rows) != 2 || rows[0].Quantity != "10" || rows[1].Quantity != "30" {
		t.Fatalf("unexpected rows after removal: %+v", rows)
	}
	if err := st.RemoveAdditionalRow(id, 5); err == nil {
		t.Fatal("expected out-of-range error")
	}
}
