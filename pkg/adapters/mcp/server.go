package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/triage/internal/logging"
	"github.com/aretw0/triage/pkg/domain"
)

// CapabilitiesURI is the resource listing registered domains.
const CapabilitiesURI = "triage://capabilities"

// Engine is the routing core exposed over MCP.
type Engine interface {
	Route(ctx context.Context, question string, sc *domain.SessionContext) domain.AgentResponse
	Capabilities() []domain.DomainCapability
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("triage-mcp", strings.TrimSpace(version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("MCP Server shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	askTool := mcp.NewTool("ask_question",
		mcp.WithDescription("Route a compliance question to the matching domain and return a structured answer."),
		mcp.WithString("question", mcp.Required(), mcp.Description("The question in natural language")),
		mcp.WithString("context", mcp.Description("JSON object with the session context: preferences, history, therapeutic_area (optional)")),
		mcp.WithOutputSchema[domain.AgentResponse](),
	)
	s.mcpServer.AddTool(askTool, mcp.NewStructuredToolHandler(s.handleAsk))
}

func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.AgentResponse, error) {
	question, _ := args["question"].(string)

	var sc *domain.SessionContext
	if raw, ok := args["context"].(string); ok && strings.TrimSpace(raw) != "" {
		sc = &domain.SessionContext{}
		if err := json.Unmarshal([]byte(raw), sc); err != nil {
			s.logger.Warn("MCP Ask: invalid context", "err", err)
			return domain.AgentResponse{}, fmt.Errorf("invalid context: %w", err)
		}
	}

	resp := s.engine.Route(ctx, question, sc)
	s.logger.Debug("MCP Ask: routed", "agent", resp.Agent, "resolution", resp.Resolution)
	return resp, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CapabilitiesURI, "Registered Domains",
		mcp.WithMIMEType("application/json"),
	), s.readCapabilities)
}

func (s *Server) readCapabilities(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.engine.Capabilities())
	if err != nil {
		return nil, fmt.Errorf("failed to encode capabilities: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CapabilitiesURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
