package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/triage"
	"github.com/aretw0/triage/internal/presentation/tui"
	httpAdapter "github.com/aretw0/triage/pkg/adapters/http"
)

// ServeOptions configures the serve command.
type ServeOptions struct {
	Options
	// Port overrides http.port when > 0.
	Port  int
	Watch bool
}

// RunServe starts the REST server and blocks until SIGINT/SIGTERM.
func RunServe(opts ServeOptions) error {
	cfg, err := loadConfig(opts.Options)
	if err != nil {
		return err
	}
	if opts.Port > 0 {
		cfg.HTTP.Port = opts.Port
	}
	logger := createLogger(cfg)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	app, err := createApp(sigCtx, cfg, logger)
	if err != nil {
		return err
	}

	handler, err := httpAdapter.NewHandler(app.Engine,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{})),
		httpAdapter.WithHealthCheck(app.Health),
	)
	if err != nil {
		return err
	}

	if opts.Watch {
		if err := watchKnowledge(sigCtx, app, logger); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		tui.PrintBanner(os.Stderr)
		printSystemMessage("triage %s listening on %s", triage.Version, srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		app.Close(context.Background())
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-sigCtx.Done():
		printSystemMessage("Shutdown signal received: %v", sigCtx.Signal())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown did not complete", "err", err)
			srv.Close()
		}
		if err := app.Close(ctx); err != nil {
			logger.Warn("usage drain incomplete", "err", err)
		}
		printSystemMessage("triage server stopped gracefully")
		return nil
	}
}
