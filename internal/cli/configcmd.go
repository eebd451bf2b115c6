package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/prime-mcgowan/packing-list/internal/config"
	"github.com/prime-mcgowan/packing-list/internal/ui"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
		// Skips the root setup so a broken config file can still be replaced.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.resolvedConfigPath())
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := a.resolvedConfigPath()
			if p == "" {
				return errors.New("config init: no config directory; pass --config")
			}
			if _, err := os.Stat(p); err == nil && !force {
				return usageErrorf("config init: %s already exists (use --force to overwrite)", p)
			}
			if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
				return fmt.Errorf("mkdir config dir: %w", err)
			}
			if err := os.WriteFile(p, []byte(config.DefaultConfigTemplate()), 0o644); err != nil {
				return fmt.Errorf("write file: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "wrote "+p)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(pathCmd, initCmd)
	return cmd
}

func (a *app) resolvedConfigPath() string {
	if a.configPath != "" {
		return a.configPath
	}
	return config.DefaultPath()
}
