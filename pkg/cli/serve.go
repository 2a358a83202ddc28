package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/candlelight-lab/quarterdeck/pkg/cli/config"
	controller "github.com/candlelight-lab/quarterdeck/pkg/controller/http"
	"github.com/candlelight-lab/quarterdeck/pkg/usecase"
	"github.com/candlelight-lab/quarterdeck/pkg/utils/apperr"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		dataCfg    config.Data
		paletteCfg config.Palette
	)

	flags := joinFlags(
		serverCfg.Flags(),
		dataCfg.Flags(),
		paletteCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting quarterdeck server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("data", dataCfg),
				slog.Any("palette", paletteCfg),
			)

			// Create dataset repository using config
			repo, err := dataCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			palette, err := paletteCfg.Configure()
			if err != nil {
				return err
			}

			// Create use cases
			drillUC := usecase.NewDrillDown()
			dashboardUC := usecase.NewDashboard(repo, drillUC,
				usecase.WithPalette(palette))

			// Verify every dataset is reachable before accepting traffic
			dashboardUC.Preload(ctx)

			// Create HTTP server
			server, err := controller.NewServer(ctx, serverCfg.Addr, dashboardUC, drillUC)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					apperr.Handle(ctx, err)
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
