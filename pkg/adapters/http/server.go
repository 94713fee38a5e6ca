package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/aretw0/triage/internal/logging"
	"github.com/aretw0/triage/pkg/domain"
)

//go:embed openapi.yaml
var rawSpec []byte

// MaxBodyBytes bounds the request body read by /ask.
const MaxBodyBytes = 1 << 20

// Engine is the routing core served over HTTP.
type Engine interface {
	Route(ctx context.Context, question string, sc *domain.SessionContext) domain.AgentResponse
	Capabilities() []domain.DomainCapability
	Capability(name string) (domain.DomainCapability, bool)
}

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Question string                 `json:"question"`
	Context  *domain.SessionContext `json:"context,omitempty"`
}

// Server serves the Engine.
type Server struct {
	Engine  Engine
	logger  *slog.Logger
	metrics http.Handler
	health  func(ctx context.Context) error
	spec    *openapi3.T
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithHealthCheck makes /healthz report 503 when check fails.
func WithHealthCheck(check func(ctx context.Context) error) Option {
	return func(s *Server) {
		s.health = check
	}
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	spec, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	s := &Server{
		Engine: engine,
		logger: logging.NewNop(),
		spec:   spec,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.With(s.validate("/ask")).Post("/ask", s.Ask)
	r.With(s.validate("/capabilities")).Get("/capabilities", s.ListCapabilities)
	r.With(s.validate("/capabilities/{domain}")).Get("/capabilities/{domain}", s.GetCapability)
	r.Get("/healthz", s.Health)

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// validate checks the request against the operation declared for pattern.
func (s *Server) validate(pattern string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			item := s.spec.Paths.Find(pattern)
			if item == nil {
				next.ServeHTTP(w, r)
				return
			}
			op := item.GetOperation(r.Method)
			if op == nil {
				next.ServeHTTP(w, r)
				return
			}

			params := map[string]string{}
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				for i, key := range rctx.URLParams.Keys {
					params[key] = rctx.URLParams.Values[i]
				}
			}

			r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: params,
				Route: &routers.Route{
					Spec:      s.spec,
					Path:      pattern,
					PathItem:  item,
					Method:    r.Method,
					Operation: op,
				},
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				s.logger.Warn("request rejected", "path", r.URL.Path, "err", err)
				writeError(w, http.StatusBadRequest, validationMessage(err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Error()
	}
	return "invalid request"
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Triage API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// Ask handles the POST /ask request.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var body AskRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("Ask: Invalid request body", "err", err)
		return
	}

	resp := s.Engine.Route(r.Context(), body.Question, body.Context)
	s.logger.Debug("Ask: routed",
		"agent", resp.Agent,
		"specialist", resp.Specialist,
		"resolution", resp.Resolution,
		"confidence", resp.Confidence,
	)
	writeJSON(w, s.logger, http.StatusOK, resp)
}

// ListCapabilities handles GET /capabilities, optionally filtered by keyword.
func (s *Server) ListCapabilities(w http.ResponseWriter, r *http.Request) {
	var keyword string
	if err := runtime.BindQueryParameter("form", true, false, "keyword", r.URL.Query(), &keyword); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid keyword: %v", err))
		return
	}

	caps := s.Engine.Capabilities()
	if keyword = strings.ToLower(strings.TrimSpace(keyword)); keyword != "" {
		filtered := caps[:0:0]
		for _, c := range caps {
			for _, k := range c.Keywords {
				if strings.EqualFold(k, keyword) {
					filtered = append(filtered, c)
					break
				}
			}
		}
		caps = filtered
	}
	writeJSON(w, s.logger, http.StatusOK, caps)
}

// GetCapability handles GET /capabilities/{domain}.
func (s *Server) GetCapability(w http.ResponseWriter, r *http.Request) {
	var name string
	err := runtime.BindStyledParameterWithOptions("simple", "domain", chi.URLParam(r, "domain"), &name,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid domain: %v", err))
		return
	}

	c, ok := s.Engine.Capability(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown domain %q", name))
		return
	}
	writeJSON(w, s.logger, http.StatusOK, c)
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.Error("health check failed", "err", err)
			writeJSON(w, s.logger, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
