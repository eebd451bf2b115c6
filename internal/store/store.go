// Package store holds the packing list for one session.
//
// Store is the only place items change. Every mutation builds a new backing
// slice, so a snapshot handed out earlier (to a renderer, a sorted view, a
// test) keeps describing the list as it was when it was taken.
package store

import (
	"slices"
	"strings"

	"github.com/prime-mcgowan/packing-list/internal/log"
	"github.com/prime-mcgowan/packing-list/internal/model"
)

// Store is the ordered, in-memory list of items. Not safe for concurrent use;
// it is owned by a single UI loop.
type Store struct {
	items []model.Item
	ids   IDGenerator
	seen  map[string]struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default counter generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		ids:  &CounterGenerator{},
		seen: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Items returns a copy of the current list in insertion order.
func (s *Store) Items() []model.Item {
	return slices.Clone(s.items)
}

func (s *Store) Len() int { return len(s.items) }

// Get looks up an item by id.
func (s *Store) Get(id string) (model.Item, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Item{}, false
	}
	return s.items[i], true
}

// Add appends a new unpacked item. The description is trimmed; an empty
// description or a quantity below 1 yields a *ValidationError and leaves the
// store untouched.
func (s *Store) Add(description string, quantity int) ([]model.Item, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return s.Items(), &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if quantity < 1 {
		return s.Items(), &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	it := model.Item{
		ID:          s.nextID(),
		Description: description,
		Quantity:    quantity,
	}
	next := make([]model.Item, len(s.items), len(s.items)+1)
	copy(next, s.items)
	s.items = append(next, it)
	log.Debug(log.CatStore, "item added", "id", it.ID, "quantity", quantity)
	return s.Items(), nil
}

// Remove deletes the item with id. Unknown ids are ignored.
func (s *Store) Remove(id string) []model.Item {
	i := s.index(id)
	if i < 0 {
		log.Debug(log.CatStore, "remove: unknown id", "id", id)
		return s.Items()
	}
	s.items = slices.Delete(slices.Clone(s.items), i, i+1)
	log.Debug(log.CatStore, "item removed", "id", id)
	return s.Items()
}

// Toggle flips Packed on the item with id. Unknown ids are ignored.
func (s *Store) Toggle(id string) []model.Item {
	i := s.index(id)
	if i < 0 {
		log.Debug(log.CatStore, "toggle: unknown id", "id", id)
		return s.Items()
	}
	next := slices.Clone(s.items)
	next[i].Packed = !next[i].Packed
	s.items = next
	log.Debug(log.CatStore, "item toggled", "id", id, "packed", next[i].Packed)
	return s.Items()
}

// Clear empties the list once c confirms ClearPrompt. A nil Confirmer counts
// as a refusal. The bool reports whether anything was cleared.
func (s *Store) Clear(c Confirmer) ([]model.Item, bool) {
	if c == nil || !c.Confirm(ClearPrompt) {
		log.Debug(log.CatStore, "clear declined", "items", len(s.items))
		return s.Items(), false
	}
	n := len(s.items)
	s.items = nil
	log.Info(log.CatStore, "list cleared", "items", n)
	return s.Items(), true
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.items, func(it model.Item) bool { return it.ID == id })
}

// nextID draws from the generator until it gets an id this store has never
// issued. Ids stay reserved after remove and clear.
func (s *Store) nextID() string {
	for {
		id := s.ids.NextID()
		if _, dup := s.seen[id]; dup {
			log.Warn(log.CatStore, "id generator repeated an id", "id", id)
			continue
		}
		s.seen[id] = struct{}{}
		return id
	}
}
