package triage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/triage/internal/logging"
	"github.com/aretw0/triage/pkg/adapters/composite"
	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/handler"
	"github.com/aretw0/triage/pkg/knowledge"
	"github.com/aretw0/triage/pkg/ports"
	"github.com/aretw0/triage/pkg/router"
	"github.com/aretw0/triage/pkg/usage"
)

// Version is the release version, overridden at build time with -ldflags.
var Version = "0.1.0-dev"

// Engine is the high-level entry point for the triage library.
// It wires the router, the four domain handlers, the knowledge store and the
// usage pipeline, and provides a simplified API for consumers.
type Engine struct {
	router   *router.Router
	recorder *usage.AsyncRecorder
	closers  []io.Closer
	logger   *slog.Logger

	store         ports.KnowledgeStore
	table         *router.Table
	sinks         []ports.UsageSink
	queueSize     int
	lookupTimeout time.Duration
	maxInput      int
	carryOver     bool
	builtin       bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithKnowledgeStore sets the curated knowledge store shared by all handlers. It is
// consulted before the built-in knowledge, so its entries win score ties.
func WithKnowledgeStore(store ports.KnowledgeStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithBuiltinKnowledge toggles the embedded curated entries. They are on by default.
func WithBuiltinKnowledge(enabled bool) Option {
	return func(e *Engine) {
		e.builtin = enabled
	}
}

// WithTable replaces the built-in routing table.
func WithTable(t *router.Table) Option {
	return func(e *Engine) {
		e.table = t
	}
}

// WithUsageSink adds a usage destination. Records are written asynchronously.
func WithUsageSink(sink ports.UsageSink) Option {
	return func(e *Engine) {
		if sink != nil {
			e.sinks = append(e.sinks, sink)
		}
	}
}

// WithUsageQueueSize bounds the usage queue.
func WithUsageQueueSize(n int) Option {
	return func(e *Engine) {
		e.queueSize = n
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLookupTimeout bounds each knowledge store query.
func WithLookupTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.lookupTimeout = d
	}
}

// WithMaxInputSize sets the question size limit in bytes.
func WithMaxInputSize(n int) Option {
	return func(e *Engine) {
		e.maxInput = n
	}
}

// WithHistoryCarryOver toggles routing by the previous user message.
func WithHistoryCarryOver(enabled bool) Option {
	return func(e *Engine) {
		e.carryOver = enabled
	}
}

// WithCloser registers a resource released by Close, after the usage queue drains.
func WithCloser(c io.Closer) Option {
	return func(e *Engine) {
		if c != nil {
			e.closers = append(e.closers, c)
		}
	}
}

// New initializes a new Engine.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger:        logging.NewNop(),
		table:         router.DefaultTable(),
		queueSize:     usage.DefaultQueueSize,
		lookupTimeout: handler.DefaultLookupTimeout,
		maxInput:      router.MaxInputSize(),
		carryOver:     true,
		builtin:       true,
	}
	for _, opt := range opts {
		opt(e)
	}

	store, err := e.knowledgeStore()
	if err != nil {
		return nil, err
	}
	handlerOpts := []handler.Option{
		handler.WithLogger(e.logger),
		handler.WithLookupTimeout(e.lookupTimeout),
	}
	if store != nil {
		handlerOpts = append(handlerOpts, handler.WithKnowledgeStore(store))
	}

	routerOpts := []router.Option{
		router.WithTable(e.table),
		router.WithLogger(e.logger),
		router.WithMaxInputSize(e.maxInput),
		router.WithHistoryCarryOver(e.carryOver),
		router.WithHandlers(
			handler.NewRegulatory(handlerOpts...),
			handler.NewAssessment(handlerOpts...),
			handler.NewAnalytics(handlerOpts...),
			handler.NewGeneral(handlerOpts...),
		),
	}

	if len(e.sinks) > 0 {
		var sink ports.UsageSink = e.sinks[0]
		if len(e.sinks) > 1 {
			sink = usage.MultiSink(e.sinks)
		}
		e.recorder = usage.NewAsyncRecorder(sink,
			usage.WithQueueSize(e.queueSize),
			usage.WithLogger(e.logger),
		)
		routerOpts = append(routerOpts, router.WithUsageRecorder(e.recorder))
	}

	r, err := router.New(routerOpts...)
	if err != nil {
		if e.recorder != nil {
			e.recorder.Close(context.Background())
		}
		return nil, fmt.Errorf("failed to build router: %w", err)
	}
	e.router = r
	return e, nil
}

// knowledgeStore combines the configured store with the built-in entries.
func (e *Engine) knowledgeStore() (ports.KnowledgeStore, error) {
	if !e.builtin {
		return e.store, nil
	}
	builtin, err := knowledge.NewStore()
	if err != nil {
		return nil, err
	}
	if e.store == nil {
		return builtin, nil
	}
	return composite.New([]ports.KnowledgeStore{e.store, builtin}, composite.WithLogger(e.logger)), nil
}

// Ask answers one question. It never fails: every outcome is an AgentResponse.
func (e *Engine) Ask(ctx context.Context, question string, sc *domain.SessionContext) domain.AgentResponse {
	return e.router.Route(ctx, question, sc)
}

// Route is Ask under the name the transport adapters expect.
func (e *Engine) Route(ctx context.Context, question string, sc *domain.SessionContext) domain.AgentResponse {
	return e.Ask(ctx, question, sc)
}

// Classify reports which domain a question would be routed to, without answering it.
// Input the sanitizer rejects classifies like an empty question.
func (e *Engine) Classify(question string, sc *domain.SessionContext) router.Decision {
	clean, err := router.Sanitize(question, e.maxInput)
	if err != nil {
		clean = ""
	}
	return e.router.Classify(clean, sc)
}

// Capabilities lists the registered domains.
func (e *Engine) Capabilities() []domain.DomainCapability {
	return e.router.Capabilities()
}

// Capability returns one domain's capability.
func (e *Engine) Capability(name string) (domain.DomainCapability, bool) {
	return e.router.Capability(name)
}

// Table returns the active routing table.
func (e *Engine) Table() *router.Table {
	return e.router.Table()
}

// DroppedUsage returns how many usage records were dropped by a full queue.
func (e *Engine) DroppedUsage() int64 {
	if e.recorder == nil {
		return 0
	}
	return e.recorder.Dropped()
}

// Close drains the usage queue and releases registered resources.
func (e *Engine) Close(ctx context.Context) error {
	var errs []error
	if e.recorder != nil {
		if err := e.recorder.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain usage queue: %w", err))
		}
	}
	for _, c := range e.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
