package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/prime-mcgowan/packing-list/internal/model"
	"github.com/prime-mcgowan/packing-list/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item.
type listItem struct {
	item model.Item
}

func (i listItem) FilterValue() string { return i.item.Description }

// itemDelegate renders each item on a single line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(listItem)
	if !ok {
		return
	}
	desc := ui.Truncate(it.item.Description, max(m.Width()-12, 10))

	box := mutedStyle.Render(boxUnpacked)
	text := fmt.Sprintf("%d %s", it.item.Quantity, desc)
	if it.item.Packed {
		box = successStyle.Render(boxPacked)
		text = packedStyle.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+box+" "+text)
}
