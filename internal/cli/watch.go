package cli

import (
	"context"
	"log/slog"
)

// watchKnowledge hot-reloads the loam knowledge directory until ctx ends.
func watchKnowledge(ctx context.Context, app *App, logger *slog.Logger) error {
	if app.Loam == nil {
		logger.Warn("--watch ignored: no knowledge.dir configured")
		return nil
	}
	events, err := app.Loam.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for id := range events {
			logger.Info("knowledge reloaded", "document", id)
		}
	}()
	return nil
}
