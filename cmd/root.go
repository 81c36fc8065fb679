package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/plot-geojson/internal/config"
	"github.com/sells-group/plot-geojson/internal/schema"
	"github.com/sells-group/plot-geojson/internal/table"
)

var cfg *config.Config

var (
	inputSheet     string
	inputDelimiter string
	inputEncoding  string
)

var rootCmd = &cobra.Command{
	Use:   "plot-geojson",
	Short: "Convert plot tables with WKT geometry to GeoJSON",
	Long:  "Validates plot exports (CSV or XLSX) against a known table variant, repairs unclosed polygon rings, and writes a GeoJSON FeatureCollection.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		applyInputFlags(cmd)

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// applyInputFlags lets --sheet, --delimiter and --encoding override config.
func applyInputFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("sheet") {
		cfg.Input.Sheet = inputSheet
	}
	if cmd.Flags().Changed("delimiter") {
		cfg.Input.Delimiter = inputDelimiter
	}
	if cmd.Flags().Changed("encoding") {
		cfg.Input.Encoding = inputEncoding
	}
}

// loadRegistry returns the built-in variants plus any from convert.variants_file.
func loadRegistry() (*schema.Registry, error) {
	if cfg.Convert.VariantsFile == "" {
		return schema.Default(), nil
	}
	return schema.LoadFile(cfg.Convert.VariantsFile)
}

func tableOptions() table.Options {
	return table.Options{
		CSV: table.CSVOptions{
			Delimiter:  cfg.Input.DelimiterRune(),
			Encoding:   cfg.Input.Encoding,
			LazyQuotes: true,
		},
		Sheet: cfg.Input.Sheet,
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&inputSheet, "sheet", "", "XLSX sheet name (default first sheet)")
	rootCmd.PersistentFlags().StringVar(&inputDelimiter, "delimiter", ",", "CSV delimiter")
	rootCmd.PersistentFlags().StringVar(&inputEncoding, "encoding", "utf-8", "CSV character encoding")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
