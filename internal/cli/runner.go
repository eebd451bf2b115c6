// Package cli wires the packlist commands together.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/message"

	"github.com/prime-mcgowan/packing-list/internal/config"
	"github.com/prime-mcgowan/packing-list/internal/log"
	"github.com/prime-mcgowan/packing-list/internal/shell"
	"github.com/prime-mcgowan/packing-list/internal/store"
	"github.com/prime-mcgowan/packing-list/internal/template"
	"github.com/prime-mcgowan/packing-list/internal/tui"
	"github.com/prime-mcgowan/packing-list/internal/ui"
)

// UsageError marks a bad invocation. Run maps it to exit code 2.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageErrorf("%s: unexpected argument %q", cmd.CommandPath(), args[0])
	}
	return nil
}

// app carries state shared by every subcommand of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        config.Config
	closeLog   func() error
	in         io.Reader
}

// Run executes args and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, in io.Reader, out, errOut io.Writer) int {
	root, a := newRootCommand(in)
	defer func() { _ = a.teardown() }()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	if err == nil {
		return 0
	}
	ui.Fail(errOut, err.Error())
	var uerr *UsageError
	if errors.As(err, &uerr) {
		fmt.Fprintln(errOut, ui.C(ui.Current().Muted, "Hint: run `packlist --help`"))
		return 2
	}
	return 1
}

// Execute runs the process arguments against the real terminal.
func Execute() int {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func newRootCommand(in io.Reader) (*cobra.Command, *app) {
	a := &app{v: config.New(), in: in}

	root := &cobra.Command{
		Use:   "packlist",
		Short: "A travel packing list",
		Long: `packlist keeps a packing list for one session: add items with a quantity,
mark them packed, and watch the progress line fill up.

Run without a subcommand for the interactive list.`,
		Args:              noArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.String("template", "", "seed the list from a .json or .yaml file")
	pf.String("theme", "", "color theme: classic, neon or mono")
	pf.String("sort", "", "sort order: input, description or packed")
	pf.String("locale", "", "locale for sorting and numbers, e.g. en, de, sv")
	pf.String("color", "", "color output: auto, always or never")
	pf.String("id-gen", "", "item id generator: counter, time or uuid")
	pf.String("log-file", "", "write debug logs to this file")
	pf.String("log-level", "", "log level: debug, info, warn or error")

	for flag, key := range map[string]string{
		"template":  "store.template",
		"theme":     "ui.theme",
		"sort":      "ui.sort",
		"locale":    "ui.locale",
		"color":     "ui.color",
		"id-gen":    "store.id_generator",
		"log-file":  "log.file",
		"log-level": "log.level",
	} {
		// Lookup cannot fail: the flags are declared just above.
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newShowCommand(a),
		newShellCommand(a),
		newConfigCommand(a),
	)
	return root, a
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, _ := log.ParseLevel(cfg.Log.Level)
	closeLog, err := log.Init(cfg.Log.File, level)
	if err != nil {
		return err
	}
	a.closeLog = closeLog

	ui.SetColorMode(cfg.UI.Color)
	ui.SetTheme(cfg.UI.Theme)
	log.Info(log.CatCLI, "starting", "command", cmd.CommandPath())
	return nil
}

func (a *app) teardown() error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}

// newSession builds the store for this invocation, seeded from the
// configured template when there is one.
func (a *app) newSession() (*store.Store, error) {
	ids, err := store.NewIDGenerator(a.cfg.Store.IDGenerator)
	if err != nil {
		return nil, err
	}
	s := store.New(store.WithIDGenerator(ids))

	path := a.cfg.Store.Template
	if path == "" {
		return s, nil
	}
	if expanded, err := expandHome(path); err == nil {
		path = expanded
	}
	entries, err := template.Load(path)
	if err != nil {
		log.ErrorErr(log.CatCLI, "Failed to load template", err, "path", path)
		return nil, fmt.Errorf("load: %w", err)
	}
	if err := template.Seed(s, entries); err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return s, nil
}

func (a *app) printer() *message.Printer {
	tag, _ := a.cfg.LanguageTag()
	return message.NewPrinter(tag)
}

func (a *app) runTUI(*cobra.Command, []string) error {
	s, err := a.newSession()
	if err != nil {
		return err
	}
	tag, _ := a.cfg.LanguageTag()
	return tui.Run(s, tui.Options{Sort: a.cfg.SortKey(), Locale: tag})
}

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Edit the list line by line",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.newSession()
			if err != nil {
				return err
			}
			tag, _ := a.cfg.LanguageTag()
			sh := shell.New(s, a.in, cmd.OutOrStdout(), shell.Options{
				Sort:   a.cfg.SortKey(),
				Locale: tag,
				ErrOut: cmd.ErrOrStderr(),
			})
			return sh.Run()
		},
	}
}

func expandHome(p string) (string, error) {
	if len(p) < 2 || p[:2] != "~/" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, p[2:]), nil
}
