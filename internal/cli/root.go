// Package cli implements the nvr commands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rcliao/nvr/internal/config"
	"github.com/rcliao/nvr/internal/prompt"
	"github.com/rcliao/nvr/internal/report"
	"github.com/rcliao/nvr/internal/store"
)

var (
	historyPath string
	backendFlag string
	formatFlag  string
	verbose     bool

	cfg    *config.Config
	logger *slog.Logger
)

// RootCmd is the top-level command. Without a subcommand it runs the
// interactive menu.
var RootCmd = &cobra.Command{
	Use:   "nvr",
	Short: "Need-Value-Return purchase decision tool",
	Long: "Score a prospective purchase across seven value dimensions, get a buy/consider/reject\n" +
		"recommendation, and keep a history of past decisions.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&historyPath, "history", "H", "", "History path (default: $NVR_HISTORY, else ~/.nvr/nvr_records.json or .db per backend)")
	RootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "History backend: json or sqlite (default: $NVR_BACKEND or json)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging on stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	c, err := config.Load(config.Path())
	if err != nil {
		return err
	}
	if historyPath != "" {
		c.HistoryPath = historyPath
	}
	if backendFlag != "" {
		c.Backend = backendFlag
	}
	c.Resolve()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	switch formatFlag {
	case "text", "json":
	default:
		return fmt.Errorf("unknown format %q (valid: text, json)", formatFlag)
	}
	cfg = c
	return nil
}

func openBackend() (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return store.NewSQLiteBackend(cfg.HistoryPath)
	default:
		return store.NewJSONBackend(cfg.HistoryPath), nil
	}
}

func openHistory(ctx context.Context) (*store.History, error) {
	b, err := openBackend()
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	logger.Debug("backend opened", "backend", cfg.Backend, "location", b.Location())
	return store.Open(ctx, b, logger), nil
}

func printer(w io.Writer) *report.Printer {
	return report.NewPrinter(w, cfg.Currency)
}

// interrupted reports whether err means the user left: Ctrl-C or end of
// input.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, prompt.ErrClosed)
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}

func farewell(w io.Writer) {
	fmt.Fprintln(w, "\n👋 Goodbye. Spend wisely!")
}
