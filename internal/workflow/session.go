package workflow

import (
	"sort"

	"dolapkapak/internal/domain"
)

// SessionStore holds the signed-in identity and the order history, newest first.
type SessionStore struct {
	session *domain.Session
	history []domain.Order
}

// Start replaces any previous session. history is copied and ordered newest first.
func (s *SessionStore) Start(session domain.Session, history []domain.Order) {
	sess := session
	s.session = &sess
	s.history = make([]domain.Order, len(history))
	for i, o := range history {
		s.history[i] = o.Clone()
	}
	sort.SliceStable(s.history, func(i, j int) bool {
		return s.history[i].CreatedAt.After(s.history[j].CreatedAt)
	})
}

func (s *SessionStore) End() {
	s.session = nil
	s.history = nil
}

func (s *SessionStore) Active() bool { return s.session != nil }

func (s *SessionStore) Current() (domain.Session, bool) {
	if s.session == nil {
		return domain.Session{}, false
	}
	return *s.session, true
}

func (s *SessionStore) Prepend(o domain.Order) {
	s.history = append([]domain.Order{o.Clone()}, s.history...)
}

// History returns deep copies; confirmed orders are never changed through it.
func (s *SessionStore) History() []domain.Order {
	out := make([]domain.Order, len(s.history))
	for i, o := range s.history {
		out[i] = o.Clone()
	}
	return out
}
