package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/travelhub/internal/booking"
	"github.com/mark3labs/travelhub/internal/catalog"
	"github.com/mark3labs/travelhub/internal/ledger"
	"github.com/mark3labs/travelhub/internal/logger"
	"github.com/mark3labs/travelhub/internal/metrics"
	"github.com/mark3labs/travelhub/internal/nats"
	"github.com/mark3labs/travelhub/internal/tui"
	"github.com/spf13/cobra"
)

var bookFlags struct {
	tab      string
	guests   int
	noLedger bool
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Run the booking wizard in the terminal",
	Long: `Run the full-screen booking wizard.

The wizard walks through search, results, details, payment and
confirmation. Confirmed bookings are written to an in-process ledger unless
it is disabled with --no-ledger or ledger: false in the config.`,
	RunE: runBook,
}

func init() {
	bookCmd.Flags().StringVarP(&bookFlags.tab, "tab", "t", "", "Initial catalog tab (default: from config)")
	bookCmd.Flags().IntVarP(&bookFlags.guests, "guests", "g", 0, "Initial guest count (default: from config)")
	bookCmd.Flags().BoolVar(&bookFlags.noLedger, "no-ledger", false, "Do not record bookings")
}

// wizardOptions merges command flags over the loaded config.
func wizardOptions(tabFlag string, guestsFlag int) ([]booking.Option, error) {
	tab := cfg.Tab()
	if tabFlag != "" {
		parsed, err := catalog.ParseTab(tabFlag)
		if err != nil {
			return nil, err
		}
		tab = parsed
	}
	guests := cfg.DefaultGuests
	if guestsFlag > 0 {
		guests = guestsFlag
	}
	return []booking.Option{booking.WithTab(tab), booking.WithGuests(guests)}, nil
}

func runBook(cmd *cobra.Command, args []string) error {
	wizardOpts, err := wizardOptions(bookFlags.tab, bookFlags.guests)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []tui.Option{
		tui.WithWizardOptions(wizardOpts...),
		tui.WithMetrics(metrics.New()),
	}

	if cfg.Ledger && !bookFlags.noLedger {
		l, err := ledger.Open(ctx)
		if err != nil {
			return fmt.Errorf("failed to open ledger: %w", err)
		}
		defer func() {
			if err := l.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
			}
		}()
		opts = append(opts, tui.WithRecorder(l))
		defer reportLedger(context.Background(), l)
	}

	logger.Info("Starting booking wizard")
	return tui.Run(ctx, opts...)
}

// reportLedger prints how many events the session recorded.
func reportLedger(ctx context.Context, l *ledger.Ledger) {
	events, err := l.List(ctx)
	if err != nil {
		logger.Warn("Failed to list ledger: %v", err)
		return
	}
	confirmed := 0
	for _, e := range events {
		if e.Type == nats.EventTypeBookingConfirmed {
			confirmed++
		}
	}
	if confirmed > 0 {
		fmt.Printf("%d booking(s) confirmed this session.\n", confirmed)
	}
}
