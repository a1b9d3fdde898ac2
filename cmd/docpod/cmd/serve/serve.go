package serve

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docpod/cmd/docpod/cmd/cmdutil"
	"docpod/internal/app"
)

var shutdownTimeout time.Duration

func init() {
	Cmd.Flags().DurationVar(&shutdownTimeout, "shutdownTimeout", 30*time.Second, "time allowed for in-flight requests on shutdown")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the podcast workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := cmdutil.Load(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		application, cleanup, err := app.InitializeApplication(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to initialize application", zap.Error(err))
			return err
		}
		defer cleanup()

		application.Pool.Start(ctx)
		serverErr := application.Server.Start()

		select {
		case <-ctx.Done():
			logger.Info("shutdown signal received")
		case err = <-serverErr:
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := application.Server.Shutdown(shutdownCtx); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
		application.Pool.Stop()
		return err
	},
}
