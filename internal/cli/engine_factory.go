package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aretw0/triage"
	"github.com/aretw0/triage/internal/config"
	"github.com/aretw0/triage/pkg/adapters/composite"
	"github.com/aretw0/triage/pkg/adapters/file"
	loamstore "github.com/aretw0/triage/pkg/adapters/loam"
	"github.com/aretw0/triage/pkg/adapters/redis"
	"github.com/aretw0/triage/pkg/adapters/sqlite"
	"github.com/aretw0/triage/pkg/ports"
	"github.com/aretw0/triage/pkg/router"
	"github.com/aretw0/triage/pkg/usage"
)

// App is a fully wired engine plus the resources transports need.
type App struct {
	Engine   *triage.Engine
	Registry *prometheus.Registry
	// Loam is set when a knowledge directory is configured, for hot reload.
	Loam *loamstore.Store

	pingers []func(ctx context.Context) error
}

// Health pings every networked backend.
func (a *App) Health(ctx context.Context) error {
	var errs []error
	for _, ping := range a.pingers {
		if err := ping(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close drains usage and releases backends.
func (a *App) Close(ctx context.Context) error {
	return a.Engine.Close(ctx)
}

// createApp builds the engine described by cfg.
func createApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{Registry: prometheus.NewRegistry()}
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var (
		stores  []ports.KnowledgeStore
		sinks   []ports.UsageSink
		closers []io.Closer
	)
	fail := func(err error) (*App, error) {
		for _, c := range closers {
			c.Close()
		}
		return nil, err
	}

	if len(cfg.Knowledge.Files) > 0 {
		st, err := file.NewStore(cfg.Knowledge.Files...)
		if err != nil {
			return fail(fmt.Errorf("load knowledge files: %w", err))
		}
		logger.Info("knowledge files loaded", "files", len(cfg.Knowledge.Files), "entries", st.Len())
		stores = append(stores, st)
	}

	if cfg.Knowledge.Dir != "" {
		st, err := loamstore.Open(ctx, cfg.Knowledge.Dir)
		if err != nil {
			return fail(fmt.Errorf("open knowledge dir: %w", err))
		}
		app.Loam = st
		stores = append(stores, st)
	}

	if cfg.Knowledge.SQLite != "" {
		st, err := sqlite.Open(cfg.Knowledge.SQLite)
		if err != nil {
			return fail(fmt.Errorf("open sqlite: %w", err))
		}
		closers = append(closers, st)
		stores = append(stores, st)
		app.pingers = append(app.pingers, st.Ping)
		if cfg.Usage.SQLite {
			sinks = append(sinks, st)
		}
	}

	if cfg.Knowledge.Redis.Addr != "" {
		rc := cfg.Knowledge.Redis
		st := redis.New(rc.Addr, rc.Password, rc.DB, redis.WithPrefix(rc.Prefix))
		closers = append(closers, st)
		stores = append(stores, st)
		app.pingers = append(app.pingers, st.Ping)
		if cfg.Usage.Redis {
			sinks = append(sinks, st)
		}
	}

	promSink, err := usage.NewPrometheusSink(app.Registry)
	if err != nil {
		return fail(err)
	}
	sinks = append(sinks, promSink)
	if cfg.Usage.Log {
		sinks = append(sinks, usage.NewLogSink(logger, slog.LevelInfo))
	}

	opts := []triage.Option{
		triage.WithLogger(logger),
		triage.WithLookupTimeout(cfg.Lookup.Timeout),
		triage.WithMaxInputSize(cfg.Input.MaxSize),
		triage.WithUsageQueueSize(cfg.Usage.Queue),
		triage.WithBuiltinKnowledge(cfg.Knowledge.Builtin),
	}
	switch len(stores) {
	case 0:
	case 1:
		opts = append(opts, triage.WithKnowledgeStore(stores[0]))
	default:
		opts = append(opts, triage.WithKnowledgeStore(composite.New(stores, composite.WithLogger(logger))))
	}
	for _, s := range sinks {
		opts = append(opts, triage.WithUsageSink(s))
	}
	for _, c := range closers {
		opts = append(opts, triage.WithCloser(c))
	}
	if cfg.Routing.Table != "" {
		table, err := router.LoadTable(cfg.Routing.Table)
		if err != nil {
			return fail(err)
		}
		opts = append(opts, triage.WithTable(table))
	}

	eng, err := triage.New(opts...)
	if err != nil {
		return fail(fmt.Errorf("error initializing engine: %w", err))
	}
	app.Engine = eng
	return app, nil
}
