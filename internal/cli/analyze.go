package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/nvr/internal/prompt"
	"github.com/rcliao/nvr/internal/session"
	"github.com/rcliao/nvr/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a new purchase analysis",
		Long:  "Answer the need, value, time and impulse questions for one product and record the result.",
		Args:  cobra.NoArgs,
		RunE:  runAnalyze,
	}

	RootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	h, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer h.Close()

	out := cmd.OutOrStdout()
	prompts := out
	if formatFlag == "json" {
		prompts = cmd.ErrOrStderr()
	}
	term := prompt.NewTerminal(cmd.InOrStdin(), prompts)
	if err := analyze(cmd.Context(), term, h, out, prompts); err != nil {
		if interrupted(err) {
			farewell(prompts)
			return nil
		}
		return err
	}
	return nil
}

// analyze runs one session. Aborted sessions are reported on notes and
// swallowed.
func analyze(ctx context.Context, asker session.Asker, h *store.History, out, notes io.Writer) error {
	p := printer(out)
	opts := []session.OrchestratorOption{session.WithLogger(logger)}
	if formatFlag == "text" {
		p.Header("💰 NVR purchase decision analysis")
		opts = append(opts, session.WithObserver(p))
	}

	res, err := session.New(asker, h, opts...).Run(ctx)
	if session.IsAborted(err) {
		fmt.Fprintf(notes, "❌ %v\n", err)
		return nil
	}
	if res == nil {
		return err
	}

	if formatFlag == "json" {
		if jerr := writeJSON(out, res); jerr != nil {
			return jerr
		}
	} else {
		p.Result(res)
	}
	if err != nil {
		return fmt.Errorf("record not saved: %w", err)
	}
	if formatFlag == "text" {
		fmt.Fprintf(out, "\n✅ Decision saved to %s\n", h.Location())
	}
	return nil
}
