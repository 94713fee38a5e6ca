package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/triage/internal/config"
	"github.com/aretw0/triage/internal/logging"
)

// Options are the persistent flags shared by every command.
type Options struct {
	ConfigPath string
	Debug      bool
}

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// loadConfig reads the configuration and applies --debug.
func loadConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// createLogger configures the application logger. Logs always go to Stderr
// so that Stdout stays clean for answers and JSON-RPC.
func createLogger(cfg *config.Config) *slog.Logger {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	logger, err := logging.NewFormat(cfg.Log.Format, level)
	if err != nil {
		return logging.New(level)
	}
	return logger
}

// printSystemMessage prints a standardized system message to stderr.
func printSystemMessage(format string, args ...any) {
	fmt.Fprintf(os.Stderr, ">>> %s\n", fmt.Sprintf(format, args...))
}
