package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/plot-geojson/internal/convert"
	"github.com/sells-group/plot-geojson/internal/feature"
	"github.com/sells-group/plot-geojson/internal/table"
)

var (
	convertOutput      string
	convertVariant     string
	convertSkipInvalid bool
	convertIndent      bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a CSV or XLSX plot table to GeoJSON",
	Long: `Reads a plot table, checks it against a table variant, and writes a
GeoJSON FeatureCollection next to the input (<name>.geojson).

Examples:
  # Detect the variant from the header
  plot-geojson convert plots.csv

  # Force a variant and write to stdout
  plot-geojson convert farms.xlsx --variant eudr --output -

  # Keep going past rows with unparseable geometry
  plot-geojson convert plots.csv --skip-invalid`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("convert"); err != nil {
			return err
		}
		input := args[0]

		registry, err := loadRegistry()
		if err != nil {
			return eris.Wrap(err, "convert: load variants")
		}

		tbl, err := table.ReadFile(cmd.Context(), input, tableOptions())
		if err != nil {
			return eris.Wrap(err, "convert: read table")
		}

		opts := convert.Options{Variant: cfg.Convert.Variant, SkipInvalid: cfg.Convert.SkipInvalid}
		if cmd.Flags().Changed("variant") {
			opts.Variant = convertVariant
		}
		if cmd.Flags().Changed("skip-invalid") {
			opts.SkipInvalid = convertSkipInvalid
		}
		indent := cfg.Convert.Indent
		if cmd.Flags().Changed("indent") {
			indent = convertIndent
		}

		res, err := convert.New(registry, opts).Run(cmd.Context(), tbl)
		if err != nil {
			return err
		}
		for _, issue := range res.Issues {
			zap.L().Warn("skipped row", zap.Int("row", issue.Row), zap.String("value", issue.Value), zap.Error(issue.Err))
		}

		out := convertOutput
		if out == "" {
			out = filepath.Join(filepath.Dir(input), convert.OutputName(input))
		}
		if err := writeCollection(cmd.OutOrStdout(), out, res, indent); err != nil {
			return err
		}

		zap.L().Info("conversion complete",
			zap.String("input", input),
			zap.String("output", out),
			zap.String("variant", res.Variant),
			zap.Int("features", len(res.Collection.Features)),
		)
		return nil
	},
}

// writeCollection writes to stdout when out is "-", otherwise to the file out.
func writeCollection(stdout io.Writer, out string, res *convert.Result, indent bool) error {
	if out == "-" {
		return feature.Encode(stdout, res.Collection, indent)
	}

	f, err := os.Create(out)
	if err != nil {
		return eris.Wrapf(err, "convert: create %s", out)
	}
	if err := feature.Encode(f, res.Collection, indent); err != nil {
		_ = f.Close()
		return err
	}
	return eris.Wrap(f.Close(), "convert: close output")
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output path, or - for stdout (default <input>.geojson)")
	convertCmd.Flags().StringVar(&convertVariant, "variant", "auto", "table variant id, or auto to detect")
	convertCmd.Flags().BoolVar(&convertSkipInvalid, "skip-invalid", false, "skip rows with invalid geometry instead of aborting")
	convertCmd.Flags().BoolVar(&convertIndent, "indent", false, "indent the GeoJSON output")
	rootCmd.AddCommand(convertCmd)
}
