package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/mark3labs/travelhub/internal/config"
	"github.com/mark3labs/travelhub/internal/logger"
	"github.com/mark3labs/travelhub/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "▀█▀ █▀█ ▄▀█ █ █ █▀▀ █   █ █ █ █ █▄▄"
	logoText2 = " █  █▀▄ █▀█ ▀▄▀ ██▄ █▄▄ █▀█ █▄█ █▄█"
)

// Version set via ldflags during build
var version = "dev"

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "travelhub",
	Short:             "Mock travel booking wizard for the terminal and MCP clients",
	PersistentPreRunE: loadConfig,
}

// loadConfig reads and validates the layered config, then applies its
// logging settings.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Configure(loaded.LogLevel, loaded.LogFile); err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	cfg = loaded
	logger.Debug("Config loaded: tab=%s guests=%d ledger=%t", cfg.DefaultTab, cfg.DefaultGuests, cfg.Ledger)
	return nil
}

// renderLogo colors the two logo lines with the theme accents.
func renderLogo() string {
	t := theme.Current()
	line1 := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Render(logoText1)
	line2 := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)).Render(logoText2)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

travelhub is a mock travel booking wizard. Search hotels, cars, tours and
visas, pick a listing, enter contact and card details and receive a
booking confirmation. Nothing is charged and no search is performed: every
catalog is a fixed list of four listings.

The same wizard runs as a full-screen TUI (travelhub book) and as an MCP
server for agents (travelhub mcp). Confirmed bookings are kept in an
embedded NATS JetStream ledger for the lifetime of the process.`

	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(setupCmd)
}
