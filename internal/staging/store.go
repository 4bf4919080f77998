package staging

import (
	"math"

	"github.com/google/uuid"

	"dolapkapak/internal/domain"
)

// Store accumulates the items of the order being composed, in insertion order.
type Store struct {
	items []domain.OrderItem
	newID func() string
}

func New() *Store {
	return &Store{newID: func() string { return "item-" + uuid.NewString() }}
}

// NewWithIDs lets callers control id generation.
func NewWithIDs(newID func() string) *Store {
	return &Store{newID: newID}
}

// AddItem validates draft and appends it with a fresh id. On error the store
// is left unchanged.
func (s *Store) AddItem(draft domain.DraftItem) (domain.OrderItem, error) {
	if !positive(draft.Width) || !positive(draft.Height) || draft.Quantity <= 0 {
		return domain.OrderItem{}, domain.NewValidation("item", domain.ErrMsgDimensionsPositive)
	}
	if !draft.Model.Valid() {
		return domain.OrderItem{}, domain.NewValidation("model", domain.ErrMsgUnknownModel)
	}
	if !draft.Color.Valid() {
		return domain.OrderItem{}, domain.NewValidation("color", domain.ErrMsgUnknownColor)
	}

	it := domain.OrderItem{
		ID:       s.newID(),
		Width:    draft.Width,
		Height:   draft.Height,
		Quantity: draft.Quantity,
		Model:    draft.Model,
		Color:    draft.Color,
		Notes:    draft.Notes,
	}
	s.items = append(s.items, it)
	return it, nil
}

// RemoveItem is a no-op for unknown ids.
func (s *Store) RemoveItem(id string) {
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return
		}
	}
}

// ListItems returns a copy; callers may keep it after the store changes.
func (s *Store) ListItems() []domain.OrderItem {
	out := make([]domain.OrderItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

func (s *Store) Clear() { s.items = nil }

// positive rejects NaN and infinities along with non-positive values.
func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}
