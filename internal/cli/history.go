package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/nvr/internal/decision"
	"github.com/rcliao/nvr/internal/store"
)

func init() {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent decisions, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}

	historyCmd.Flags().IntP("limit", "l", 0, "Max results (default: configured history limit)")
	historyCmd.Flags().StringP("product", "p", "", "Filter by product name substring")
	historyCmd.Flags().StringP("decision", "d", "", "Filter by decision: buy, consider, reject")

	showCmd := &cobra.Command{
		Use:   "show <index>",
		Short: "Show one decision in detail",
		Long:  "Show one decision. Index 1 is the most recent decision, as numbered by history.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	RootCmd.AddCommand(historyCmd, showCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	product, _ := cmd.Flags().GetString("product")
	tierStr, _ := cmd.Flags().GetString("decision")

	var tier decision.Tier
	if tierStr != "" {
		t, err := decision.ParseTier(tierStr)
		if err != nil {
			return err
		}
		tier = t
	}
	if limit <= 0 {
		limit = cfg.HistoryLimit
	}

	h, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer h.Close()

	results := h.Search(store.SearchParams{Query: product, Decision: tier, Limit: limit})

	out := cmd.OutOrStdout()
	if formatFlag == "json" {
		return writeJSON(out, results)
	}
	printer(out).History(results)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}

	h, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer h.Close()

	r, err := h.ByRecency(idx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if formatFlag == "json" {
		return writeJSON(out, r)
	}
	printer(out).Record(r)
	return nil
}
