package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show decision statistics",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	h, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer h.Close()

	stats := h.Statistics()

	out := cmd.OutOrStdout()
	if formatFlag == "json" {
		return writeJSON(out, stats)
	}
	printer(out).Stats(stats)
	return nil
}
