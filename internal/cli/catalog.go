package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List breeds and food with prices",
		Args:  cobra.NoArgs,
		RunE:  runCatalog,
	}

	RootCmd.AddCommand(cmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	if err := validateFormat(); err != nil {
		return err
	}

	catalog, err := newClient().Catalog(cmd.Context())
	if err != nil {
		return err
	}

	if formatFlag == "json" {
		return printJSON(cmd.OutOrStdout(), catalog)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Chickens cost %d. Starting money %d.\n\n", catalog.ChickenPrice, catalog.StartingMoney)
	fmt.Fprintln(w, "BREED\tNAME\tEGG SPEED\tHUNGER RATE\tQUALITY")
	for _, b := range catalog.Breeds {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%.1f\n", b.Breed, b.DisplayName, b.EggSpeedMultiplier, b.HungerRateMultiplier, b.BaseQualityMultiplier)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "FOOD\tNAME\tPRICE")
	for _, f := range catalog.Foods {
		fmt.Fprintf(w, "%s\t%s\t%d\n", f.ID, f.Name, f.Price)
	}
	return w.Flush()
}
