package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "do <command> [args...]",
		Short:   "Run a text command, e.g. `do buy chicken bantam`",
		Example: "  henhousectl do start\n  henhousectl do feed 1 grass\n  henhousectl do sell",
		Args:    cobra.MinimumNArgs(1),
		RunE:    runDo,
	}

	cmd.Flags().StringP("name", "n", "", "Player name used when starting an unnamed game")

	RootCmd.AddCommand(cmd)
}

func runDo(cmd *cobra.Command, args []string) error {
	if err := validateFormat(); err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")

	text := strings.Join(args, " ")
	if !strings.HasPrefix(text, "/") {
		text = "/" + text
	}

	reply, err := newClient().Command(cmd.Context(), text, name)
	if err != nil {
		return err
	}

	if formatFlag == "json" {
		return printJSON(cmd.OutOrStdout(), reply)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), reply.Reply)
	return err
}
