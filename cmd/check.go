package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/plot-geojson/internal/schema"
	"github.com/sells-group/plot-geojson/internal/table"
)

var checkVariant string

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check a table's columns against a variant without converting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadRegistry()
		if err != nil {
			return eris.Wrap(err, "check: load variants")
		}

		tbl, err := table.ReadFile(cmd.Context(), args[0], tableOptions())
		if err != nil {
			return eris.Wrap(err, "check: read table")
		}

		id := cfg.Convert.Variant
		if cmd.Flags().Changed("variant") {
			id = checkVariant
		}
		v, err := registry.Resolve(id, tbl.Columns)
		if err == nil {
			err = schema.Check(tbl.Columns, v)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "ok: %s matches variant %q (%d rows)\n", args[0], v.ID, len(tbl.Rows))
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkVariant, "variant", "auto", "table variant id, or auto to detect")
	rootCmd.AddCommand(checkCmd)
}
