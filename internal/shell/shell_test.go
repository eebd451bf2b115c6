package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prime-mcgowan/packing-list/internal/store"
	"github.com/prime-mcgowan/packing-list/internal/ui"
	"github.com/prime-mcgowan/packing-list/internal/view"
)

func session(t *testing.T, input string) (*store.Store, string) {
	t.Helper()
	ui.SetColorMode("never")
	t.Cleanup(func() { ui.SetColorMode("auto") })

	s := store.New()
	var out bytes.Buffer
	sh := New(s, strings.NewReader(input), &out, Options{})
	require.NoError(t, sh.Run())
	return s, out.String()
}

func TestRun_AddToggleStats(t *testing.T) {
	s, out := session(t, strings.Join([]string{
		"add 2 Passports",
		"add 12 Socks",
		"toggle 2",
		"stats",
		"quit",
	}, "\n"))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Socks", items[1].Description)
	assert.True(t, items[1].Packed)
	assert.Contains(t, out, "✔ added 2 Passports")
	assert.Contains(t, out, "✔ packed Socks")
	assert.Contains(t, out, "You have 2 items on your list, you've already packed 1 (50%)")
}

func TestRun_AddDefaultsAndMultiword(t *testing.T) {
	s, _ := session(t, "add Phone charger\nadd 3\n")

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Phone charger", items[0].Description)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "3", items[1].Description, "a lone number is a description")
}

func TestRun_AddValidation(t *testing.T) {
	s, out := session(t, "add\nadd 0 Socks\n")
	assert.Equal(t, 0, s.Len())
	assert.Contains(t, out, "usage: add")
	assert.Contains(t, out, "add: quantity: must be at least 1")
}

func TestRun_IndexesFollowSortOrder(t *testing.T) {
	s, out := session(t, strings.Join([]string{
		"add Charger",
		"add Book",
		"sort description",
		"rm 1",
		"ls",
	}, "\n"))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Charger", items[0].Description)
	assert.Contains(t, out, "removed Book")
	assert.Contains(t, out, view.SortDescription.Label())
}

func TestRun_BadIndex(t *testing.T) {
	s, out := session(t, "add Book\ntoggle 5\nrm x\ntoggle\n")
	assert.False(t, s.Items()[0].Packed)
	assert.Contains(t, out, "index out of range: have 1, got 5")
	assert.Contains(t, out, "rm: not a number: x")
	assert.Contains(t, out, "usage: toggle <index>")
}

func TestRun_ClearConfirmed(t *testing.T) {
	s, out := session(t, "add Book\nadd Socks\nclear\ny\n")
	assert.Equal(t, 0, s.Len())
	assert.Contains(t, out, store.ClearPrompt+" [y/N]")
	assert.Contains(t, out, "list cleared")
}

func TestRun_ClearDeclined(t *testing.T) {
	s, out := session(t, "add Book\nclear\nno\n")
	assert.Equal(t, 1, s.Len())
	assert.Contains(t, out, "kept the list")
}

func TestRun_ClearAtEOFDeclines(t *testing.T) {
	s, _ := session(t, "add Book\nclear")
	assert.Equal(t, 1, s.Len())
}

func TestRun_ClearEmpty(t *testing.T) {
	_, out := session(t, "clear\n")
	assert.Contains(t, out, "nothing to clear")
	assert.NotContains(t, out, store.ClearPrompt)
}

func TestRun_SortErrors(t *testing.T) {
	_, out := session(t, "sort\nsort weight\n")
	assert.Contains(t, out, "usage: sort")
	assert.Contains(t, out, `unknown sort key "weight"`)
}

func TestRun_UnknownCommandAndHelp(t *testing.T) {
	_, out := session(t, "fly\nhelp\n")
	assert.Contains(t, out, "unknown command: fly")
	assert.Contains(t, out, "add [qty] <description...>")
}

func TestRun_EmptyStats(t *testing.T) {
	_, out := session(t, "stats\n")
	assert.Contains(t, out, "Start adding some items to your packing list")
}

func TestExec_QuitStops(t *testing.T) {
	sh := New(store.New(), strings.NewReader(""), &bytes.Buffer{}, Options{})
	assert.True(t, sh.Exec("exit"))
	assert.False(t, sh.Exec("   "))
}
