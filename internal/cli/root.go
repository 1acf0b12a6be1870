// Package cli implements the henhousectl commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/henhouse/pkg/clients/henhouse"
)

const defaultServer = "http://localhost:8080"

var (
	serverURL  string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:           "henhousectl",
	Short:         "Play and inspect a henhouse game server",
	Long:          "A small client for the henhouse REST API. Text commands work the same as over WhatsApp.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "Server URL (default: $HENHOUSE_URL or "+defaultServer+")")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
}

func getServerURL() string {
	if serverURL != "" {
		return serverURL
	}
	if env := os.Getenv("HENHOUSE_URL"); env != "" {
		return env
	}
	return defaultServer
}

func newClient() *henhouse.APIClient {
	return henhouse.NewClient(getServerURL())
}

func validateFormat() error {
	switch formatFlag {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("unknown format %q, expected json or text", formatFlag)
	}
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
