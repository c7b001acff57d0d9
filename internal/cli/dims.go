package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/nvr/internal/dimension"
	"github.com/rcliao/nvr/internal/scoring"
)

func init() {
	cmd := &cobra.Command{
		Use:   "dims",
		Short: "List the value dimensions and time-decay categories",
		Args:  cobra.NoArgs,
		RunE:  runDims,
	}

	RootCmd.AddCommand(cmd)
}

func runDims(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if formatFlag == "json" {
		return writeJSON(out, map[string]any{
			"dimensions":  dimension.All(),
			"time_decays": scoring.TimeDecays(),
			"max_match":   scoring.MaxPossibleMatch(),
		})
	}

	printer(out).Dimensions()
	fmt.Fprintln(out, "\nTime-decay categories:")
	for i, d := range scoring.TimeDecays() {
		fmt.Fprintf(out, "  %d. %-14s x%.1f  %s\n", i+1, d.Label, d.Coefficient, d.Desc)
	}
	return nil
}
