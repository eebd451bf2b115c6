package ui

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/message"

	"github.com/prime-mcgowan/packing-list/internal/model"
	"github.com/prime-mcgowan/packing-list/internal/view"
)

const (
	AppTitle   = "🏝 Far Away 🧳"
	FormPrompt = "What do you need for your trip?"

	// descWidth caps descriptions in terminal cells, not bytes.
	descWidth = 60
)

// StatsMessage is the footer line for st, with numbers formatted for p's locale.
func StatsMessage(p *message.Printer, st view.Stats) string {
	switch st.State {
	case view.StateEmpty:
		return "Start adding some items to your packing list 🚀"
	case view.StateComplete:
		return "You got everything! Ready to go ✈️"
	}
	return p.Sprintf("You have %d items on your list, you've already packed %d (%d%%)",
		st.Total, st.Packed, st.Percentage)
}

// Truncate shortens s to at most width cells, ending in "…" when cut.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// ItemLine renders one row: index, check box, quantity and description.
// Packed descriptions are struck through.
func ItemLine(n int, it model.Item) string {
	t := Current()
	box, color := t.BoxUnpacked, t.Muted
	desc := Truncate(it.Description, descWidth)
	if it.Packed {
		box, color = t.BoxPacked, t.Success
		desc = C(t.Strike, desc)
	}
	return fmt.Sprintf("%s %s %d %s", C(dim, fmt.Sprintf("%2d.", n)), C(color, box), it.Quantity, desc)
}

// ItemLines numbers items from 1 in the order given.
func ItemLines(items []model.Item) []string {
	if len(items) == 0 {
		return []string{C(Current().Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		out = append(out, ItemLine(i+1, it))
	}
	return out
}

// GroupLines splits items into "To pack" and "Packed" sections. Each row keeps
// its index from the flat listing of items.
func GroupLines(items []model.Item) []string {
	var pending, packed []int
	for i, it := range items {
		if it.Packed {
			packed = append(packed, i)
		} else {
			pending = append(pending, i)
		}
	}
	section := func(title string, idx []int) []string {
		lines := []string{C(Current().Accent, title)}
		if len(idx) == 0 {
			return append(lines, C(Current().Muted, "(none)"))
		}
		for _, i := range idx {
			lines = append(lines, ItemLine(i+1, items[i]))
		}
		return lines
	}
	lines := section("To pack", pending)
	lines = append(lines, "")
	return append(lines, section("Packed", packed)...)
}

// Header is the title line with live counts.
func Header(st view.Stats) string {
	t := Current()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		C(t.Title, AppTitle),
		C(t.Success, "✔"), st.Packed,
		C(t.Pending, "•"), st.Total-st.Packed,
		C(t.Accent, "Total"), st.Total,
	)
}

// ListPanel draws the whole list view: header, progress, items, footer.
// items must already be in display order.
func ListPanel(w io.Writer, p *message.Printer, items []model.Item, key view.SortKey, group bool) {
	st := view.ComputeStats(items)
	t := Current()

	lines := []string{Header(st)}
	if !st.IsEmpty() {
		lines = append(lines, C(t.Muted, ProgressBar(st.Percentage, 28)))
	}
	lines = append(lines, C(t.Muted, key.Label()), "")
	if group {
		lines = append(lines, GroupLines(items)...)
	} else {
		lines = append(lines, ItemLines(items)...)
	}
	lines = append(lines, "", StatsMessage(p, st))
	Panel(w, lines)
}
