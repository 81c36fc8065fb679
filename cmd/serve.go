package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/plot-geojson/internal/convert"
	"github.com/sells-group/plot-geojson/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		registry, err := loadRegistry()
		if err != nil {
			return eris.Wrap(err, "serve: load variants")
		}

		srv := server.New(registry, server.Options{
			Port:           cfg.Server.Port,
			MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Convert: convert.Options{
				Variant:     cfg.Convert.Variant,
				SkipInvalid: cfg.Convert.SkipInvalid,
			},
			Input: tableOptions(),
		})
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
