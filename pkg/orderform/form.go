package orderform

import (
	"fmt"

	"github.com/google/uuid"
)

// Field names accepted by UpdateField / UpdateAdditionalRow.
const (
	FieldDate     = "date"
	FieldRefNo    = "refNo"
	FieldMill     = "mill"
	FieldQuantity = "quantity"
	FieldQuality  = "quality"
	FieldProcess  = "process"
)

// AdditionalRow is a supplementary entry sharing the main row's grouping key.
type AdditionalRow struct {
	Quantity string
	Quality  string
	Process  string
}

// FormItem is one editable logical entry. All fields hold raw user input as
// strings; parsing happens at validation and submit time. The ID is a local
// uuid, never persisted, and stays unique across add/remove cycles.
type FormItem struct {
	ID         string
	Date       string
	RefNo      string
	Mill       string
	Quantity   string
	Quality    string
	Process    string
	Additional []AdditionalRow
}

// NewFormItem returns a blank item with a fresh local id and no additional rows.
func NewFormItem() FormItem {
	return FormItem{ID: uuid.NewString()}
}

func (it *FormItem) setField(field, value string) error {
	switch field {
	case FieldDate:
		it.Date = value
	case FieldRefNo:
		it.RefNo = value
	case FieldMill:
		it.Mill = value
	case FieldQuantity:
		it.Quantity = value
	case FieldQuality:
		it.Quality = value
	case FieldProcess:
		it.Process = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func (r *AdditionalRow) setField(field, value string) error {
	switch field {
	case FieldQuantity:
		r.Quantity = value
	case FieldQuality:
		r.Quality = value
	case FieldProcess:
		r.Process = value
	default:
		return fmt.Errorf("unknown additional row field %q", field)
	}
	return nil
}
