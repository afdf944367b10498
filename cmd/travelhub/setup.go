package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/travelhub/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Write a travelhub config file with the defaults",
	Long: `Write a travelhub config file holding the default settings, ready to edit.

The global file lives at $XDG_CONFIG_HOME/travelhub/travelhub.yml
(~/.config/travelhub/travelhub.yml when XDG_CONFIG_HOME is unset). With
--project the file is written to ./travelhub.yml instead, which overrides
the global one for commands run from this directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Write ./travelhub.yml instead of the global file")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Replace an existing file")
}

// setupTarget picks the file the setup command writes and its writer.
func setupTarget(project bool) (string, func(*config.Config) error) {
	if project {
		return config.ProjectPath(), config.WriteProject
	}
	return config.GlobalPath(), config.WriteGlobal
}

func runSetup(cmd *cobra.Command, args []string) error {
	path, write := setupTarget(setupFlags.project)

	if _, err := os.Stat(path); err == nil && !setupFlags.force {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", path)
	}

	defaults := config.Default()
	if err := write(defaults); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config written to: %s\n", path)
	fmt.Fprintf(out, "  default_tab:    %s\n", defaults.DefaultTab)
	fmt.Fprintf(out, "  default_guests: %d\n", defaults.DefaultGuests)
	fmt.Fprintf(out, "  ledger:         %t\n", defaults.Ledger)
	fmt.Fprintf(out, "  http_addr:      %s\n\n", defaults.HTTPAddr)
	fmt.Fprintln(out, "Run 'travelhub book' to get started.")
	return nil
}
