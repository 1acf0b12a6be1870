package main

import (
	"fmt"
	"os"

	"github.com/mamadbah2/henhouse/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
