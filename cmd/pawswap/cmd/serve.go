package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/api"
	"github.com/paw-chain/pawswap/api/health"
	"github.com/paw-chain/pawswap/app/telemetry"
	"github.com/paw-chain/pawswap/x/swap/client/cli"
)

const (
	flagHost         = "host"
	flagPort         = "port"
	flagRateLimitRPS = "rate-limit-rps"

	telemetryShutdownTimeout = 5 * time.Second
)

// ServeCmd starts the quote API
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve quotes over HTTP",
		Long: `Start the quote API. The server shuts down gracefully on SIGINT or SIGTERM.

Example:
  $ pawswap serve --port 5000
  $ PAWSWAP_TELEMETRY_ENABLED=true pawswap serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx, err := cli.GetClientContext(cmd)
			if err != nil {
				return err
			}

			serverCfg := clientCtx.Config.Server
			serverCfg.Version = Version
			if cmd.Flags().Changed(flagHost) {
				serverCfg.Host, _ = cmd.Flags().GetString(flagHost)
			}
			if cmd.Flags().Changed(flagPort) {
				serverCfg.Port, _ = cmd.Flags().GetString(flagPort)
			}
			if cmd.Flags().Changed(flagRateLimitRPS) {
				serverCfg.RateLimitRPS, _ = cmd.Flags().GetInt(flagRateLimitRPS)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			provider, err := telemetry.NewProvider(clientCtx.Config.Telemetry)
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
				defer cancel()
				if err := provider.Shutdown(shutdownCtx); err != nil {
					clientCtx.Logger.Error("telemetry shutdown failed", "error", err)
				}
			}()

			server, err := api.NewServer(clientCtx.Keeper, clientCtx.Logger, provider.Meter(), &serverCfg)
			if err != nil {
				return err
			}
			server.RegisterHealthCheck("telemetry", health.OptionalCheck("telemetry", func(context.Context) error {
				return provider.HealthCheck()
			}))

			return server.Start(ctx)
		},
	}

	cmd.Flags().String(flagHost, "", "Listen host, overriding server.host")
	cmd.Flags().String(flagPort, "", "Listen port, overriding server.port")
	cmd.Flags().Int(flagRateLimitRPS, 0, "Requests per second per client IP, overriding server.rate_limit_rps")
	return cmd
}
