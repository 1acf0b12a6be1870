package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/henhouse/internal/service/reporting"
)

func init() {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "List the most profitable finished games",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboard,
	}

	cmd.Flags().IntP("limit", "l", 10, "Number of results")

	RootCmd.AddCommand(cmd)
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	if err := validateFormat(); err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	results, err := newClient().Leaderboard(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if formatFlag == "json" {
		return printJSON(cmd.OutOrStdout(), results)
	}
	if len(results) == 0 {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "No finished games yet.")
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), reporting.FormatLeaderboard(results))
	return err
}
