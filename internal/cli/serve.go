package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eshaffer321/ateema-proposal-engine/internal/api"
	"github.com/eshaffer321/ateema-proposal-engine/internal/application/service"
	"github.com/eshaffer321/ateema-proposal-engine/internal/infrastructure/config"
)

const shutdownTimeout = 30 * time.Second

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port int
}

// RunServe runs the API until ctx is cancelled or the process gets SIGINT or
// SIGTERM, then drains in-flight requests.
func RunServe(ctx context.Context, cfg *config.Config, svc *service.ProposalService, flags ServeFlags, logger *slog.Logger) error {
	apiCfg := api.ConfigFrom(cfg.API)
	if flags.Port != 0 {
		apiCfg.Port = flags.Port
	}
	server := api.NewServer(apiCfg, svc, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("received shutdown signal", "products", len(svc.Products()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
