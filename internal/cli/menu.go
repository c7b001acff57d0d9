package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/nvr/internal/prompt"
	"github.com/rcliao/nvr/internal/store"
)

func runMenu(cmd *cobra.Command, args []string) error {
	h, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer h.Close()

	out := cmd.OutOrStdout()
	term := prompt.NewTerminal(cmd.InOrStdin(), out)
	err = menu(cmd.Context(), term, h, out)
	if interrupted(err) {
		farewell(out)
		return nil
	}
	return err
}

func menu(ctx context.Context, term *prompt.Terminal, h *store.History, out io.Writer) error {
	p := printer(out)
	p.Header("💰 NVR purchase decision tool")
	for {
		fmt.Fprintln(out, "\n  1. New analysis")
		fmt.Fprintln(out, "  2. View history")
		fmt.Fprintln(out, "  3. Statistics")
		fmt.Fprintln(out, "  4. Exit")

		choice, err := term.ReadLine(ctx, "\nChoose (1-4): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			if err := analyze(ctx, term, h, out, out); err != nil {
				if interrupted(err) {
					return err
				}
				fmt.Fprintf(out, "❌ %v\n", err)
			}
		case "2":
			if err := browse(ctx, term, h, out); err != nil {
				return err
			}
		case "3":
			p.Stats(h.Statistics())
		case "4":
			farewell(out)
			return nil
		default:
			fmt.Fprintln(out, "⚠️  Invalid option, please choose 1-4")
		}
	}
}

// browse lists recent decisions and lets the user open one by number.
func browse(ctx context.Context, term *prompt.Terminal, h *store.History, out io.Writer) error {
	p := printer(out)
	results := h.Search(store.SearchParams{Limit: cfg.HistoryLimit})
	p.History(results)
	if len(results) == 0 {
		return nil
	}

	line, err := term.ReadLine(ctx, "\nEnter # for details (Enter to go back): ")
	if err != nil || line == "" {
		return err
	}
	idx, err := strconv.Atoi(line)
	if err != nil || idx < 1 || idx > len(results) {
		fmt.Fprintln(out, "⚠️  Invalid number")
		return nil
	}
	r, err := h.ByRecency(idx)
	if err != nil {
		fmt.Fprintf(out, "⚠️  %v\n", err)
		return nil
	}
	p.Record(r)
	_, err = term.ReadLine(ctx, "\nPress Enter to continue...")
	return err
}
