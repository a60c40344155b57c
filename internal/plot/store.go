package plot

import "strconv"

// Store is the ordered in-memory collection of plots. It is not safe for concurrent use;
// the UI event loop is its only writer.
type Store struct {
	plots     []*Plot
	onDiscard func(*Plot)
}

type Option func(*Store)

// WithDiscard registers a hook called for every record dropped by Load, before the
// replacement becomes visible.
func WithDiscard(fn func(*Plot)) Option {
	return func(s *Store) { s.onDiscard = fn }
}

func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the entire collection.
func (s *Store) Load(records []*Plot) {
	if s.onDiscard != nil {
		for _, p := range s.plots {
			s.onDiscard(p)
		}
	}
	s.plots = append([]*Plot(nil), records...)
}

// Add appends p after assigning it the next free id.
func (s *Store) Add(p *Plot) *Plot {
	p.ID = s.NextID()
	s.plots = append(s.plots, p)
	return p
}

// NextID is max(numeric ids, 0) + 1. Ids without a leading integer are ignored, so the
// result never collides with an existing id.
func (s *Store) NextID() string {
	hi := 0
	for _, p := range s.plots {
		if n, ok := NumericID(p.ID); ok && n > hi {
			hi = n
		}
	}
	return strconv.Itoa(hi + 1)
}

// Remove drops p by identity.
func (s *Store) Remove(p *Plot) bool {
	for i, q := range s.plots {
		if q == p {
			s.plots = append(s.plots[:i:i], s.plots[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a snapshot in insertion order.
func (s *Store) All() []*Plot {
	return append([]*Plot(nil), s.plots...)
}

func (s *Store) Len() int { return len(s.plots) }

// Contains reports whether p is held by identity.
func (s *Store) Contains(p *Plot) bool {
	for _, q := range s.plots {
		if q == p {
			return true
		}
	}
	return false
}
