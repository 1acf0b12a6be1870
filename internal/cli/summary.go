package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/henhouse/internal/service/reporting"
)

func init() {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the profit/loss of the current session",
		Args:  cobra.NoArgs,
		RunE:  runSummary,
	}

	RootCmd.AddCommand(cmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	if err := validateFormat(); err != nil {
		return err
	}

	summary, err := newClient().Summary(cmd.Context())
	if err != nil {
		return err
	}

	if formatFlag == "json" {
		return printJSON(cmd.OutOrStdout(), summary)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), reporting.FormatSummary(*summary))
	return err
}
