package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the supported table variants",
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry, err := loadRegistry()
		if err != nil {
			return eris.Wrap(err, "variants: load")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tGEOMETRY\tREQUIRED COLUMNS")
		for _, v := range registry.Variants() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.ID, v.Name, v.GeometryColumn, strings.Join(v.RequiredColumns, ", "))
		}
		return w.Flush()
	},
}

func init() { rootCmd.AddCommand(variantsCmd) }
