package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/prime-mcgowan/packing-list/internal/model"
)

// SortKey selects a display order.
type SortKey string

const (
	SortInput       SortKey = "input"
	SortDescription SortKey = "description"
	SortPacked      SortKey = "packed"
)

// SortKeys lists every key in the order a picker should offer them.
func SortKeys() []SortKey {
	return []SortKey{SortInput, SortDescription, SortPacked}
}

// ParseSortKey accepts a key name case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys(), k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want input, description or packed)", s)
}

// Next cycles input → description → packed → input.
func (k SortKey) Next() SortKey {
	keys := SortKeys()
	i := slices.Index(keys, k)
	return keys[(i+1)%len(keys)]
}

// Label is the human-readable name used in menus.
func (k SortKey) Label() string {
	switch k {
	case SortDescription:
		return "Sort by description"
	case SortPacked:
		return "Sort by packed status"
	}
	return "Sort by input order"
}

// Sorter orders items for display using collation rules for one language.
type Sorter struct {
	tag language.Tag
}

func NewSorter(tag language.Tag) Sorter { return Sorter{tag: tag} }

// Sort returns a new slice ordered by key. Both non-input orders are stable.
// An unknown key falls back to input order.
func (s Sorter) Sort(items []model.Item, key SortKey) []model.Item {
	out := slices.Clone(items)
	switch key {
	case SortDescription:
		c := collate.New(s.tag)
		slices.SortStableFunc(out, func(a, b model.Item) int {
			return c.CompareString(a.Description, b.Description)
		})
	case SortPacked:
		slices.SortStableFunc(out, func(a, b model.Item) int {
			return cmp.Compare(packedRank(a), packedRank(b))
		})
	}
	return out
}

func packedRank(it model.Item) int {
	if it.Packed {
		return 1
	}
	return 0
}

// Sorted is Sorter.Sort with English collation.
func Sorted(items []model.Item, key SortKey) []model.Item {
	return NewSorter(language.English).Sort(items, key)
}
