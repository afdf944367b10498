package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/travelhub/internal/ledger"
	"github.com/mark3labs/travelhub/internal/logger"
	"github.com/mark3labs/travelhub/internal/mcpserver"
	"github.com/mark3labs/travelhub/internal/metrics"
	"github.com/spf13/cobra"
)

var mcpFlags struct {
	http     bool
	addr     string
	tab      string
	guests   int
	noLedger bool
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the booking wizard as MCP tools",
	Long: `Serve the booking wizard to MCP clients.

By default the server speaks MCP on stdin/stdout. With --http it serves the
streamable HTTP transport at /mcp and Prometheus metrics at /metrics on the
configured address (http_addr, overridable with --addr).`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().BoolVar(&mcpFlags.http, "http", false, "Serve over HTTP instead of stdio")
	mcpCmd.Flags().StringVar(&mcpFlags.addr, "addr", "", "HTTP listen address (default: from config)")
	mcpCmd.Flags().StringVarP(&mcpFlags.tab, "tab", "t", "", "Initial catalog tab (default: from config)")
	mcpCmd.Flags().IntVarP(&mcpFlags.guests, "guests", "g", 0, "Initial guest count (default: from config)")
	mcpCmd.Flags().BoolVar(&mcpFlags.noLedger, "no-ledger", false, "Do not record bookings")
}

func runMCP(cmd *cobra.Command, args []string) error {
	wizardOpts, err := wizardOptions(mcpFlags.tab, mcpFlags.guests)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []mcpserver.Option{
		mcpserver.WithWizardOptions(wizardOpts...),
		mcpserver.WithMetrics(metrics.New()),
	}

	if cfg.Ledger && !mcpFlags.noLedger {
		l, err := ledger.Open(ctx)
		if err != nil {
			return fmt.Errorf("failed to open ledger: %w", err)
		}
		defer func() {
			if err := l.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
			}
		}()
		opts = append(opts, mcpserver.WithLedger(l))
	}

	srv := mcpserver.New(version, opts...)

	if !mcpFlags.http {
		return srv.ServeStdio()
	}

	addr := cfg.HTTPAddr
	if mcpFlags.addr != "" {
		addr = mcpFlags.addr
	}
	bound, err := srv.Start(addr)
	if err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s/mcp\n", bound)

	<-ctx.Done()
	fmt.Fprintln(cmd.ErrOrStderr(), "\nShutting down gracefully...")
	logger.Info("Shutting down MCP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
