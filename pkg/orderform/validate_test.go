package orderform

import "testing"

func validItem() FormItem {
	it := NewFormItem()
	it.Date = "2026-01-05"
	it.RefNo = "C100"
	it.Mill = "millA"
	it.Quantity = "100"
	it.Quality = "2/17 RFD"
	return it
}

func TestValidateCompleteItemPasses(t *testing.T) {
	st := NewFormState()
	st.Items[0] = validItem()
	if errs := st.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateMissingMainFields(t *testing.T) {
	st := NewFormState()
	id := st.Items[0].ID
	errs := st.Validate()
	for _, field := range []string{FieldDate, FieldRefNo, FieldQuantity} {
		if _, ok := errs[id+"."+field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
}

func TestValidateQuantityMustBePositive(t *testing.T) {
	for _, bad := range []string{"0", "-5", "abc", ""} {
		st := NewFormState()
		it := validItem()
		it.Quantity = bad
		st.Items[0] = it
		errs := st.Validate()
		if _, ok := errs[it.ID+"."+FieldQuantity]; !ok {
			t.Fatalf("quantity %q should be rejected, got %v", bad, errs)
		}
	}
}

func TestValidateRequireMill(t *testing.T) {
	st := NewFormState()
	it := validItem()
	it.Mill = ""
	st.Items[0] = it

	if errs := st.Validate(); len(errs) != 0 {
		t.Fatalf("mill optional by default, got %v", errs)
	}
	st.RequireMill = true
	errs := st.Validate()
	if _, ok := errs[it.ID+"."+FieldMill]; !ok {
		t.Fatalf("expected mill error with RequireMill, got %v", errs)
	}
}

func TestValidateAdditionalRows(t *testing.T) {
	st := NewFormState()
	it := validItem()
	it.Additional = []AdditionalRow{
		{Quantity: "50", Quality: "2/17 RFD"},
		{Quantity: "0", Quality: ""},
	}
	st.Items[0] = it
	errs := st.Validate()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors got %v", errs)
	}
	if _, ok := errs[it.ID+".additional.1."+FieldQuantity]; !ok {
		t.Fatalf("expected quantity error on row 1, got %v", errs)
	}
	if _, ok := errs[it.ID+".additional.1."+FieldQuality]; !ok {
		t.Fatalf("expected quality error on row 1, got %v", errs)
	}
}

func TestValidateIsPure(t *testing.T) {
	st := NewFormState()
	st.Validate()
	if st.Errors != nil {
		t.Fatal("Validate must not mutate state")
	}
}
