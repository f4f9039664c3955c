package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/internal/presentation/tui"
	httpAdapter "github.com/aretw0/easel/pkg/adapters/http"
	"github.com/aretw0/easel/pkg/observability"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves documents over a JSON API with Server-Sent Events and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		shutdownAfter := cfg.Server.ShutdownAfter()
		if cmd.Flags().Changed("shutdown-after") {
			shutdownAfter, _ = cmd.Flags().GetDuration("shutdown-after")
		}
		logger := newLogger(cfg)

		metrics := observability.NewMetrics()
		mgr, closeStore := newManager(cfg, logger, metrics)
		defer closeStore()

		srv := &http.Server{
			Addr: fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: httpAdapter.NewHandler(mgr,
				httpAdapter.WithLogger(logger),
				httpAdapter.WithMetrics(metrics.Handler()),
			),
			ReadHeaderTimeout: 10 * time.Second,
		}

		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout, easel.Version)
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting easel server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := shutdownContext(sigCtx, shutdownAfter)
		defer cancel()
		if shutdownAfter > 0 {
			logger.Info("server will shut down automatically", "after", shutdownAfter)
		}

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				logger.Info("shutdown timer elapsed")
			}
			logger.Info("shutting down")
		}

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		}
		logger.Info("easel server stopped gracefully")
		return nil
	},
}

// shutdownContext derives the serve context. A positive after stops the
// server once it elapses.
func shutdownContext(parent context.Context, after time.Duration) (context.Context, context.CancelFunc) {
	if after <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, after)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().Duration("shutdown-after", 0, "Stop the server after this long, e.g. 5m (0 runs until interrupted)")
}
