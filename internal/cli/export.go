package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export decisions as JSON",
		Long:  "Export every decision as a JSON array in the history file format, oldest first.",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	h, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer h.Close()

	return writeJSON(cmd.OutOrStdout(), h.Export())
}
