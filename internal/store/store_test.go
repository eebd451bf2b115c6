package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prime-mcgowan/packing-list/internal/model"
)

func idOf(t *testing.T, items []model.Item, description string) string {
	t.Helper()
	for _, it := range items {
		if it.Description == description {
			return it.ID
		}
	}
	t.Fatalf("no item %q in %v", description, items)
	return ""
}

func TestNew_Empty(t *testing.T) {
	s := New()
	require.Equal(t, 0, s.Len())
	require.Empty(t, s.Items())
}

func TestAdd_AppendsUnpacked(t *testing.T) {
	s := New()

	items, err := s.Add("Passports", 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Passports", items[0].Description)
	assert.Equal(t, 2, items[0].Quantity)
	assert.False(t, items[0].Packed)
	assert.NotEmpty(t, items[0].ID)

	items, err = s.Add("Socks", 12)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Socks", items[1].Description, "new items go to the end")
}

func TestAdd_TrimsDescription(t *testing.T) {
	s := New()
	items, err := s.Add("  Charger \t", 1)
	require.NoError(t, err)
	assert.Equal(t, "Charger", items[0].Description)
}

func TestAdd_Validation(t *testing.T) {
	tests := []struct {
		name        string
		description string
		quantity    int
		field       string
	}{
		{"empty description", "", 1, "description"},
		{"blank description", "   ", 3, "description"},
		{"zero quantity", "Book", 0, "quantity"},
		{"negative quantity", "Book", -2, "quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			_, _ = s.Add("Existing", 1)

			items, err := s.Add(tt.description, tt.quantity)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Len(t, items, 1)
			assert.Equal(t, 1, s.Len())
		})
	}
}

func TestRemove(t *testing.T) {
	s := New()
	_, _ = s.Add("Passports", 2)
	items, _ := s.Add("Socks", 12)

	items = s.Remove(idOf(t, items, "Passports"))
	require.Len(t, items, 1)
	assert.Equal(t, "Socks", items[0].Description)
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	s := New()
	before, _ := s.Add("Passports", 2)

	after := s.Remove("does-not-exist")
	assert.Equal(t, before, after)
}

func TestRemove_Idempotent(t *testing.T) {
	s := New()
	_, _ = s.Add("Passports", 2)
	items, _ := s.Add("Socks", 12)
	id := idOf(t, items, "Socks")

	first := s.Remove(id)
	second := s.Remove(id)
	assert.Equal(t, first, second)
}

func TestToggle_OnlyTouchesTarget(t *testing.T) {
	s := New()
	_, _ = s.Add("Passports", 2)
	_, _ = s.Add("Socks", 12)
	before, _ := s.Add("Book", 1)

	after := s.Toggle(idOf(t, before, "Socks"))
	require.Len(t, after, 3)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])
	assert.True(t, after[1].Packed)
	assert.False(t, before[1].Packed, "earlier snapshot must not change")
}

func TestToggle_Involution(t *testing.T) {
	s := New()
	before, _ := s.Add("Passports", 2)
	id := before[0].ID

	s.Toggle(id)
	after := s.Toggle(id)
	assert.Equal(t, before, after)
}

func TestToggle_UnknownIDIsNoop(t *testing.T) {
	s := New()
	before, _ := s.Add("Passports", 2)
	assert.Equal(t, before, s.Toggle("nope"))
}

func TestClear(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		s := New()
		_, _ = s.Add("Passports", 2)
		_, _ = s.Add("Socks", 12)

		var asked string
		items, cleared := s.Clear(ConfirmFunc(func(p string) bool {
			asked = p
			return true
		}))
		assert.True(t, cleared)
		assert.Empty(t, items)
		assert.Equal(t, 0, s.Len())
		assert.Equal(t, ClearPrompt, asked)
	})

	t.Run("declined", func(t *testing.T) {
		s := New()
		_, _ = s.Add("Passports", 2)
		before, _ := s.Add("Socks", 12)

		items, cleared := s.Clear(Always(false))
		assert.False(t, cleared)
		assert.Equal(t, before, items)
	})

	t.Run("nil confirmer", func(t *testing.T) {
		s := New()
		before, _ := s.Add("Passports", 2)

		items, cleared := s.Clear(nil)
		assert.False(t, cleared)
		assert.Equal(t, before, items)
	})
}

func TestClear_IDsNotReused(t *testing.T) {
	s := New()
	first, _ := s.Add("Passports", 2)
	s.Clear(Always(true))

	second, _ := s.Add("Passports", 2)
	assert.NotEqual(t, first[0].ID, second[0].ID)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	s := New()
	items, _ := s.Add("Passports", 2)
	items[0].Description = "mutated by caller"

	got, ok := s.Get(items[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Passports", got.Description)
}

// repeatGenerator emits each id twice before moving on.
type repeatGenerator struct {
	ids []string
	i   int
}

func (g *repeatGenerator) NextID() string {
	id := g.ids[g.i/2]
	g.i++
	return id
}

func TestAdd_SkipsRepeatedGeneratorIDs(t *testing.T) {
	s := New(WithIDGenerator(&repeatGenerator{ids: []string{"a", "b", "c"}}))
	_, _ = s.Add("one", 1)
	items, _ := s.Add("two", 1)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
}

func TestScenario_PassportsAndSocks(t *testing.T) {
	s := New()
	_, err := s.Add("Passports", 2)
	require.NoError(t, err)
	items, err := s.Add("Socks", 12)
	require.NoError(t, err)

	items = s.Toggle(idOf(t, items, "Socks"))

	packed := 0
	for _, it := range items {
		if it.Packed {
			packed++
		}
	}
	assert.Equal(t, 2, len(items))
	assert.Equal(t, 1, packed)
}
