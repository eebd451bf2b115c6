// Package shell is a line-oriented packing-list session for terminals and
// scripts where the full-screen TUI is unwanted.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/prime-mcgowan/packing-list/internal/log"
	"github.com/prime-mcgowan/packing-list/internal/model"
	"github.com/prime-mcgowan/packing-list/internal/store"
	"github.com/prime-mcgowan/packing-list/internal/ui"
	"github.com/prime-mcgowan/packing-list/internal/view"
)

const prompt = "packlist> "

// Options configure a shell session.
type Options struct {
	Sort   view.SortKey
	Locale language.Tag
	// ErrOut receives failures. Defaults to the main output.
	ErrOut io.Writer
}

// Shell reads commands from in and writes results to out.
type Shell struct {
	store   *store.Store
	sorter  view.Sorter
	sortKey view.SortKey
	printer *message.Printer

	in      *bufio.Scanner
	out     io.Writer
	errOut  io.Writer
	confirm store.Confirmer
}

// New builds a shell over s. Clear confirmations are read from in.
func New(s *store.Store, in io.Reader, out io.Writer, opt Options) *Shell {
	if opt.Sort == "" {
		opt.Sort = view.SortInput
	}
	if opt.Locale == language.Und {
		opt.Locale = language.English
	}
	if opt.ErrOut == nil {
		opt.ErrOut = out
	}
	sh := &Shell{
		store:   s,
		sorter:  view.NewSorter(opt.Locale),
		sortKey: opt.Sort,
		printer: message.NewPrinter(opt.Locale),
		in:      bufio.NewScanner(in),
		out:     out,
		errOut:  opt.ErrOut,
	}
	sh.confirm = store.ConfirmFunc(sh.ask)
	return sh
}

// ask prints the question and blocks for one line. EOF means no.
func (sh *Shell) ask(question string) bool {
	fmt.Fprintf(sh.out, "%s [y/N] ", question)
	if !sh.in.Scan() {
		fmt.Fprintln(sh.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sh.in.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

// Run loops until quit or end of input.
func (sh *Shell) Run() error {
	fmt.Fprintln(sh.out, ui.C(ui.Current().Title, ui.AppTitle))
	fmt.Fprintln(sh.out, ui.C(ui.Current().Muted, ui.FormPrompt+` Type "help" for commands.`))
	for {
		fmt.Fprint(sh.out, prompt)
		if !sh.in.Scan() {
			fmt.Fprintln(sh.out)
			break
		}
		if quit := sh.Exec(sh.in.Text()); quit {
			break
		}
	}
	if err := sh.in.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// Exec runs one command line and reports whether the session should end.
func (sh *Shell) Exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	log.Debug(log.CatShell, "command", "cmd", cmd, "args", len(args))

	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		sh.help()
	case "ls", "list":
		ui.ListPanel(sh.out, sh.printer, sh.listing(), sh.sortKey, false)
	case "stats":
		fmt.Fprintln(sh.out, ui.StatsMessage(sh.printer, view.ComputeStats(sh.store.Items())))
	case "add":
		sh.add(args)
	case "toggle", "pack", "done":
		if it, ok := sh.pick(cmd, args); ok {
			sh.store.Toggle(it.ID)
			verb := "packed"
			if it.Packed {
				verb = "unpacked"
			}
			ui.OK(sh.out, verb+" "+it.Description)
		}
	case "rm", "remove", "del":
		if it, ok := sh.pick(cmd, args); ok {
			sh.store.Remove(it.ID)
			ui.OK(sh.out, "removed "+it.Description)
		}
	case "clear":
		if sh.store.Len() == 0 {
			fmt.Fprintln(sh.out, ui.C(ui.Current().Muted, "nothing to clear"))
			break
		}
		if _, cleared := sh.store.Clear(sh.confirm); cleared {
			ui.OK(sh.out, "list cleared")
		} else {
			fmt.Fprintln(sh.out, ui.C(ui.Current().Muted, "kept the list"))
		}
	case "sort":
		if len(args) != 1 {
			ui.Fail(sh.errOut, "usage: sort <input|description|packed>")
			break
		}
		k, err := view.ParseSortKey(args[0])
		if err != nil {
			ui.Fail(sh.errOut, "sort: "+err.Error())
			break
		}
		sh.sortKey = k
		ui.OK(sh.out, k.Label())
	default:
		ui.Fail(sh.errOut, "unknown command: "+cmd)
		fmt.Fprintln(sh.errOut, ui.C(ui.Current().Muted, `Hint: type "help"`))
	}
	return false
}

// add accepts "add [qty] description...". A leading integer is the quantity.
func (sh *Shell) add(args []string) {
	if len(args) == 0 {
		ui.Fail(sh.errOut, "usage: add [qty] <description...>")
		return
	}
	qty := 1
	if n, err := strconv.Atoi(args[0]); err == nil && len(args) > 1 {
		qty, args = n, args[1:]
	}
	items, err := sh.store.Add(strings.Join(args, " "), qty)
	if err != nil {
		ui.Fail(sh.errOut, "add: "+err.Error())
		return
	}
	it := items[len(items)-1]
	ui.OK(sh.out, fmt.Sprintf("added %d %s", it.Quantity, it.Description))
}

// listing is the current display order; indexes typed by the user refer to it.
func (sh *Shell) listing() []model.Item {
	return sh.sorter.Sort(sh.store.Items(), sh.sortKey)
}

func (sh *Shell) pick(cmd string, args []string) (model.Item, bool) {
	if len(args) != 1 {
		ui.Fail(sh.errOut, fmt.Sprintf("usage: %s <index>", cmd))
		return model.Item{}, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		ui.Fail(sh.errOut, cmd+": not a number: "+args[0])
		return model.Item{}, false
	}
	items := sh.listing()
	if n < 1 || n > len(items) {
		ui.Fail(sh.errOut, fmt.Sprintf("index out of range: have %d, got %d", len(items), n))
		fmt.Fprintln(sh.errOut, ui.C(ui.Current().Muted, "Hint: run `ls` to see valid indexes"))
		return model.Item{}, false
	}
	return items[n-1], true
}

func (sh *Shell) help() {
	fmt.Fprint(sh.out, `Commands:
  add [qty] <description...>   Add an item (qty defaults to 1)
  ls                           Show the list in the current sort order
  toggle <index>               Mark the item packed / unpacked
  rm <index>                   Remove the item
  clear                        Remove every item (asks first)
  sort <input|description|packed>
  stats                        Show packing progress
  quit                         Leave the session
`)
}
