package cli

import (
	"github.com/spf13/cobra"

	"github.com/prime-mcgowan/packing-list/internal/template"
	"github.com/prime-mcgowan/packing-list/internal/ui"
	"github.com/prime-mcgowan/packing-list/internal/view"
)

func newShowCommand(a *app) *cobra.Command {
	var group, asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the list with packing progress",
		Long: `Print the seeded list (see --template) in a framed panel, or as JSON with --json.
Use --sort to pick the order and --group to split it into To pack / Packed.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.newSession()
			if err != nil {
				return err
			}
			key := a.cfg.SortKey()
			tag, _ := a.cfg.LanguageTag()
			items := view.NewSorter(tag).Sort(s.Items(), key)

			if asJSON {
				return template.Encode(cmd.OutOrStdout(), key, items)
			}
			ui.ListPanel(cmd.OutOrStdout(), a.printer(), items, key, group)
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by to pack / packed")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a panel")
	return cmd
}
