package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/henhouse/internal/service/reporting"
)

func init() {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show the current farm",
		Args:  cobra.NoArgs,
		RunE:  runState,
	}

	RootCmd.AddCommand(cmd)
}

func runState(cmd *cobra.Command, args []string) error {
	if err := validateFormat(); err != nil {
		return err
	}

	state, err := newClient().State(cmd.Context())
	if err != nil {
		return err
	}

	if formatFlag == "json" {
		return printJSON(cmd.OutOrStdout(), state)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), reporting.FormatStatus(state.GameState))
	return err
}
