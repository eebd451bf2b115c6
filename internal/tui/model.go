// Package tui is the interactive packing-list session built on Bubble Tea.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/prime-mcgowan/packing-list/internal/log"
	"github.com/prime-mcgowan/packing-list/internal/store"
	"github.com/prime-mcgowan/packing-list/internal/ui"
	"github.com/prime-mcgowan/packing-list/internal/view"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdding
	modeConfirmClear
)

const (
	focusDescription = iota
	focusQuantity
)

// Options configure a session.
type Options struct {
	Sort   view.SortKey
	Locale language.Tag
}

// Model is the Bubble Tea model for one session. The store is shared by
// pointer; every copy of Model made by the update loop sees the same list.
type Model struct {
	store   *store.Store
	sorter  view.Sorter
	sortKey view.SortKey
	printer *message.Printer

	list          list.Model
	width, height int
	mode          mode

	// Inline add form
	desc, qty textinput.Model
	focus     int
	addErr    string

	status string
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pack"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	sortBind   = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort"))
	clearBind  = key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear list"))
	quitBind   = key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit"))
)

// New builds a session over s.
func New(s *store.Store, opt Options) Model {
	if opt.Sort == "" {
		opt.Sort = view.SortInput
	}
	if opt.Locale == language.Und {
		opt.Locale = language.English
	}

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	extra := func() []key.Binding {
		return []key.Binding{addBind, toggleBind, deleteBind, sortBind, clearBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	m := Model{
		store:   s,
		sorter:  view.NewSorter(opt.Locale),
		sortKey: opt.Sort,
		printer: message.NewPrinter(opt.Locale),
		list:    l,
		width:   80,
		height:  24,
	}

	m.desc = textinput.New()
	m.desc.Prompt = "> "
	m.desc.Placeholder = "Item..."
	m.desc.CharLimit = 200

	m.qty = textinput.New()
	m.qty.Prompt = "× "
	m.qty.Placeholder = "1"
	m.qty.CharLimit = 4

	m.refresh()
	m.resize()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(s *store.Store, opt Options) error {
	p := tea.NewProgram(New(s, opt), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// refresh rebuilds the list from the store's current snapshot.
func (m *Model) refresh() tea.Cmd {
	items := m.sorter.Sort(m.store.Items(), m.sortKey)
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{item: it})
	}
	m.list.Title = m.header()
	return m.list.SetItems(li)
}

func (m Model) header() string {
	st := view.ComputeStats(m.store.Items())
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s",
		titleStyle.Render(ui.AppTitle),
		successStyle.Render("✔"), st.Packed,
		pendingStyle.Render("•"), st.Total-st.Packed,
		accentStyle.Render("Total"), st.Total,
		mutedStyle.Render(m.sortKey.Label()),
	)
}

// resize fits the list into the space left by the footer and any open form.
func (m *Model) resize() {
	footer := 4
	switch m.mode {
	case modeAdding:
		footer += 5
	case modeConfirmClear:
		footer += 3
	}
	m.list.SetSize(max(m.width-4, 10), max(m.height-footer, 3))
}

func (m Model) selected() (listItem, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	return li, ok
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	switch m.mode {
	case modeAdding:
		return m.updateAdding(msg)
	case modeConfirmClear:
		return m.updateConfirm(msg)
	}

	k, isKey := msg.(tea.KeyMsg)
	// While the filter prompt is open every key belongs to it.
	if !isKey || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case k.String() == "esc" && m.list.FilterState() == list.FilterApplied:
		// the list clears its own filter
	case key.Matches(k, quitBind):
		return m, tea.Quit
	case key.Matches(k, toggleBind):
		if li, ok := m.selected(); ok {
			m.store.Toggle(li.item.ID)
			log.Debug(log.CatUI, "toggle", "id", li.item.ID)
			return m, m.refresh()
		}
		return m, nil
	case key.Matches(k, deleteBind):
		if li, ok := m.selected(); ok {
			m.store.Remove(li.item.ID)
			m.status = "removed " + li.item.Description
			log.Debug(log.CatUI, "remove", "id", li.item.ID)
			return m, m.refresh()
		}
		return m, nil
	case key.Matches(k, sortBind):
		m.sortKey = m.sortKey.Next()
		m.status = m.sortKey.Label()
		return m, m.refresh()
	case key.Matches(k, addBind):
		m.mode = modeAdding
		m.addErr = ""
		m.desc.SetValue("")
		m.qty.SetValue("")
		m.focus = focusDescription
		m.qty.Blur()
		m.resize()
		return m, m.desc.Focus()
	case key.Matches(k, clearBind):
		if m.store.Len() == 0 {
			m.status = "nothing to clear"
			return m, nil
		}
		m.mode = modeConfirmClear
		m.resize()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.closeForm()
			return m, nil
		case "tab", "shift+tab":
			if m.focus == focusDescription {
				m.focus = focusQuantity
				m.desc.Blur()
				return m, m.qty.Focus()
			}
			m.focus = focusDescription
			m.qty.Blur()
			return m, m.desc.Focus()
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == focusDescription {
		m.desc, cmd = m.desc.Update(msg)
	} else {
		m.qty, cmd = m.qty.Update(msg)
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	qty := 1
	if raw := strings.TrimSpace(m.qty.Value()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			m.addErr = "quantity must be a number"
			return m, nil
		}
		qty = n
	}

	if _, err := m.store.Add(m.desc.Value(), qty); err != nil {
		m.addErr = err.Error()
		log.Debug(log.CatUI, "add rejected", "error", err)
		return m, nil
	}
	m.status = "added " + strings.TrimSpace(m.desc.Value())
	m.closeForm()
	return m, m.refresh()
}

func (m *Model) closeForm() {
	m.mode = modeBrowse
	m.addErr = ""
	m.desc.SetValue("")
	m.qty.SetValue("")
	m.desc.Blur()
	m.qty.Blur()
	m.resize()
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	answer := k.String() == "y" || k.String() == "Y"
	_, cleared := m.store.Clear(store.ConfirmFunc(func(string) bool { return answer }))
	m.mode = modeBrowse
	m.resize()
	if cleared {
		m.status = "list cleared"
	} else {
		m.status = "clear cancelled"
	}
	return m, m.refresh()
}

func (m Model) View() string {
	content := m.list.View()

	switch m.mode {
	case modeAdding:
		title := ui.FormPrompt
		if m.addErr != "" {
			title += " " + errorStyle.Render(m.addErr)
		}
		form := title + "\n" + m.desc.View() + "\n" + m.qty.View()
		content += "\n" + panelString(form)
	case modeConfirmClear:
		content += "\n" + panelString(errorStyle.Render(store.ClearPrompt)+" "+mutedStyle.Render("[y/N]"))
	}

	content += "\n" + m.footer()
	return panelString(content)
}

func (m Model) footer() string {
	st := view.ComputeStats(m.store.Items())
	msg := ui.StatsMessage(m.printer, st)
	line := mutedStyle.Render(msg)
	if st.IsComplete() {
		line = successStyle.Render(msg)
	}
	if m.status != "" {
		line += "  " + helpStyle.Render("· "+m.status)
	}
	return line
}
