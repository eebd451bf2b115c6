package store

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/prime-mcgowan/packing-list/internal/model"
)

func assertUniqueIDs(t *rapid.T, items []model.Item) {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			t.Fatalf("duplicate id %q in %v", it.ID, items)
		}
		seen[it.ID] = true
	}
}

func pickID(t *rapid.T, s *Store, label string) string {
	items := s.Items()
	// Occasionally use an id that was never issued.
	if len(items) == 0 || rapid.IntRange(0, 9).Draw(t, label+"-stale") == 0 {
		return fmt.Sprintf("stale-%d", rapid.IntRange(0, 100).Draw(t, label+"-n"))
	}
	return items[rapid.IntRange(0, len(items)-1).Draw(t, label)].ID
}

// TestProperty_IDsStayUnique runs random operation sequences and checks that
// no two live items ever share an id, and no id is ever handed out twice.
func TestProperty_IDsStayUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		gen := rapid.SampledFrom([]string{"counter", "time", "uuid"}).Draw(t, "gen")
		g, err := NewIDGenerator(gen)
		if err != nil {
			t.Fatal(err)
		}
		s := New(WithIDGenerator(g))
		issued := make(map[string]bool)

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 3).Draw(t, fmt.Sprintf("op-%d", i)) {
			case 0:
				desc := rapid.StringMatching(`[A-Za-z ]{0,8}`).Draw(t, "desc")
				qty := rapid.IntRange(-1, 20).Draw(t, "qty")
				items, err := s.Add(desc, qty)
				if err == nil {
					id := items[len(items)-1].ID
					if issued[id] {
						t.Fatalf("id %q issued twice", id)
					}
					issued[id] = true
				}
			case 1:
				s.Remove(pickID(t, s, "remove"))
			case 2:
				s.Toggle(pickID(t, s, "toggle"))
			case 3:
				s.Clear(Always(rapid.Bool().Draw(t, "confirm")))
			}
			assertUniqueIDs(t, s.Items())
		}
	})
}

// TestProperty_EmptyAddNeverGrows checks add("", n) leaves the size alone for any n.
func TestProperty_EmptyAddNeverGrows(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New()
		for i, n := 0, rapid.IntRange(0, 10).Draw(t, "seed"); i < n; i++ {
			_, _ = s.Add(fmt.Sprintf("item %d", i), 1)
		}
		before := s.Len()

		blank := rapid.StringMatching(`[ \t]{0,4}`).Draw(t, "blank")
		qty := rapid.Int().Draw(t, "qty")
		if _, err := s.Add(blank, qty); err == nil {
			t.Fatalf("Add(%q, %d) succeeded", blank, qty)
		}
		if s.Len() != before {
			t.Fatalf("size changed from %d to %d", before, s.Len())
		}
	})
}

// TestProperty_ToggleTwiceRestores checks toggle is an involution.
func TestProperty_ToggleTwiceRestores(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New()
		n := rapid.IntRange(1, 10).Draw(t, "n")
		for i := 0; i < n; i++ {
			_, _ = s.Add(fmt.Sprintf("item %d", i), 1)
			if rapid.Bool().Draw(t, fmt.Sprintf("packed-%d", i)) {
				items := s.Items()
				s.Toggle(items[len(items)-1].ID)
			}
		}
		before := s.Items()
		id := pickID(t, s, "target")

		s.Toggle(id)
		after := s.Toggle(id)
		if fmt.Sprint(before) != fmt.Sprint(after) {
			t.Fatalf("toggle twice changed the list:\nbefore %v\nafter  %v", before, after)
		}
	})
}

// TestProperty_RemoveIdempotent checks a second remove of the same id is a no-op.
func TestProperty_RemoveIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New()
		n := rapid.IntRange(0, 10).Draw(t, "n")
		for i := 0; i < n; i++ {
			_, _ = s.Add(fmt.Sprintf("item %d", i), 1)
		}
		id := pickID(t, s, "target")

		first := s.Remove(id)
		second := s.Remove(id)
		if fmt.Sprint(first) != fmt.Sprint(second) {
			t.Fatalf("second remove changed the list:\nfirst  %v\nsecond %v", first, second)
		}
	})
}
