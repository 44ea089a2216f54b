package orderform

import "fmt"

// Phase tracks how trustworthy HasExisting currently is. After a successful
// create batch the flag flips optimistically before the confirmation re-fetch
// completes; the phase makes that window observable instead of hiding it in a
// silently-overwritten boolean.
type Phase int

const (
	// PhaseIdle: nothing submitted yet; HasExisting reflects the last load.
	PhaseIdle Phase = iota
	// PhaseOptimistic: HasExisting was flipped locally, re-fetch pending.
	PhaseOptimistic
	// PhaseConfirmed: HasExisting matches the last server re-fetch.
	PhaseConfirmed
)

func (p Phase) String() string {
	switch p {
	case PhaseOptimistic:
		return "optimistic"
	case PhaseConfirmed:
		return "confirmed"
	default:
		return "idle"
	}
}

// FormState is the whole mutable state of one open form: the editable items
// and the submission flags, consolidated into a single type instead of a
// scatter of independent booleans.
//
// Invariant: Items is never empty after initialization; RemoveItem refuses to
// delete the last item.
type FormState struct {
	Items       []FormItem
	Errors      map[string]string
	Saving      bool
	HasExisting bool
	Phase       Phase
	LastError   string

	// RequireMill makes validation demand a mill on every main row. Set for
	// mill-input forms, whose grouping key includes the mill.
	RequireMill bool
}

// NewFormState seeds a state with exactly one blank item.
func NewFormState() *FormState {
	return &FormState{Items: []FormItem{NewFormItem()}}
}

// AddItem appends a blank item and returns its local id.
func (s *FormState) AddItem() string {
	it := NewFormItem()
	s.Items = append(s.Items, it)
	return it.ID
}

// RemoveItem deletes the item with the given id. It is a no-op when only one
// item remains or when the id is unknown; it reports whether a removal
// happened.
func (s *FormState) RemoveItem(id string) bool {
	if len(s.Items) <= 1 {
		return false
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *FormState) item(id string) (*FormItem, error) {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i], nil
		}
	}
	return nil, fmt.Errorf("no form item with id %q", id)
}

// UpdateField replaces one main-row field of the item with the given id.
func (s *FormState) UpdateField(id, field, value string) error {
	it, err := s.item(id)
	if err != nil {
		return err
	}
	return it.setField(field, value)
}

// AddAdditionalRow appends a blank additional row to the item.
func (s *FormState) AddAdditionalRow(id string) error {
	it, err := s.item(id)
	if err != nil {
		return err
	}
	it.Additional = append(it.Additional, AdditionalRow{})
	return nil
}

// RemoveAdditionalRow deletes the additional row at the given position.
// Subsequent rows shift down; nothing else holds a reference to the index.
func (s *FormState) RemoveAdditionalRow(id string, index int) error {
	it, err := s.item(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(it.Additional) {
		return fmt.Errorf("additional row index %d out of range", index)
	}
	it.Additional = append(it.Additional[:index], it.Additional[index+1:]...)
	return nil
}

// UpdateAdditionalRow replaces one field of the additional row at the given
// position.
func (s *FormState) UpdateAdditionalRow(id string, index int, field, value string) error {
	it, err := s.item(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(it.Additional) {
		return fmt.Errorf("additional row index %d out of range", index)
	}
	return it.Additional[index].setField(field, value)
}
