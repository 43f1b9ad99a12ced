// Package cmd - serve command
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"payoff/api"
	"payoff/internal/config"
	"payoff/internal/logging"
	"payoff/internal/version"
)

var (
	serveAddr      string
	serveNoMetrics bool
)

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve POST /calculate and POST /batch over HTTP until interrupted.

Examples:
  payoff serve
  payoff serve --addr 127.0.0.1:9000 --no-metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		if serveNoMetrics {
			cfg.Server.MetricsEnabled = false
		}

		srv, err := api.NewServer(version.Version, cfg, logging.Logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().BoolVar(&serveNoMetrics, "no-metrics", false, "do not expose /metrics")
}
