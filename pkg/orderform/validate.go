package orderform

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// quantity fields are raw form strings; valid when they parse as a
	// positive decimal.
	v.RegisterValidation("decimalgt0", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && d.IsPositive()
	})
	return v
}

func check(errs map[string]string, key, value, tag, msg string) {
	if err := validate.Var(value, tag); err != nil {
		errs[key] = msg
	}
}

// Validate checks every item and returns a map keyed by
// "<itemID>.<field>" (main rows) or "<itemID>.additional.<index>.<field>"
// (additional rows). It is pure: state is not mutated, an empty map means the
// form is submittable.
//
// Main rows require a date, a reference number and a positive quantity (plus
// a mill when RequireMill is set, since the mill is part of the grouping key
// and an empty component would merge unrelated records server-side).
// Additional rows require a positive quantity and a quality selection.
func (s *FormState) Validate() map[string]string {
	errs := make(map[string]string)
	for _, it := range s.Items {
		check(errs, it.ID+"."+FieldDate, it.Date, "required", "date is required")
		check(errs, it.ID+"."+FieldRefNo, it.RefNo, "required", "reference number is required")
		check(errs, it.ID+"."+FieldQuantity, it.Quantity, "required,decimalgt0", "quantity must be greater than zero")
		if s.RequireMill {
			check(errs, it.ID+"."+FieldMill, it.Mill, "required", "mill is required")
		}
		for i, row := range it.Additional {
			prefix := fmt.Sprintf("%s.additional.%d.", it.ID, i)
			check(errs, prefix+FieldQuantity, row.Quantity, "required,decimalgt0", "quantity must be greater than zero")
			check(errs, prefix+FieldQuality, row.Quality, "required", "quality is required")
		}
	}
	return errs
}
