package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/triage"
	"github.com/aretw0/triage/pkg/adapters/mcp"
)

// MCPOptions configures the mcp command.
type MCPOptions struct {
	Options
	Transport string
	Port      int
}

// RunMCP serves the engine over MCP (stdio or SSE).
func RunMCP(opts MCPOptions) error {
	cfg, err := loadConfig(opts.Options)
	if err != nil {
		return err
	}
	// Stdout carries JSON-RPC on stdio; logs are always on stderr.
	logger := createLogger(cfg)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	app, err := createApp(sigCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		app.Close(ctx)
	}()

	srv := mcp.NewServer(app.Engine, triage.Version, mcp.WithLogger(logger))

	switch opts.Transport {
	case "", "stdio":
		logger.Info("Starting triage MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting triage MCP Server (SSE)", "port", opts.Port)
		return srv.ServeSSE(sigCtx, opts.Port)
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
	}
}
