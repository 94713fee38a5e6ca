package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/triage/internal/logging"
	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/handler"
	"github.com/aretw0/triage/pkg/matcher"
	"github.com/aretw0/triage/pkg/ports"
	"github.com/aretw0/triage/pkg/usage"
)

// Handler is a domain handler the router can dispatch to.
type Handler interface {
	Name() string
	Capability() domain.DomainCapability
	Process(ctx context.Context, question string, sc *domain.SessionContext) (domain.AgentResponse, error)
	ErrorResponse(sc *domain.SessionContext, err error) domain.AgentResponse
}

// Router dispatches questions to handlers. It is safe for concurrent use.
type Router struct {
	table     *Table
	handlers  map[string]Handler
	order     []Handler
	recorder  ports.UsageRecorder
	logger    *slog.Logger
	maxInput  int
	carryOver bool
	now       func() time.Time
}

// Option configures a Router.
type Option func(*Router)

// WithTable replaces the default routing table.
func WithTable(t *Table) Option {
	return func(r *Router) {
		r.table = t
	}
}

// WithHandlers registers the domain handlers. Without this option the four
// built-in handlers are used with default settings.
func WithHandlers(hs ...Handler) Option {
	return func(r *Router) {
		r.order = hs
	}
}

// WithUsageRecorder sets the usage recorder.
func WithUsageRecorder(rec ports.UsageRecorder) Option {
	return func(r *Router) {
		r.recorder = rec
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithMaxInputSize sets the question size limit in bytes.
func WithMaxInputSize(n int) Option {
	return func(r *Router) {
		r.maxInput = n
	}
}

// WithHistoryCarryOver toggles scoring of the last user message when the
// question itself matches no domain. Enabled by default.
func WithHistoryCarryOver(enabled bool) Option {
	return func(r *Router) {
		r.carryOver = enabled
	}
}

// New creates a Router. It fails when the table is invalid or names a domain
// without a registered handler.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		table:     DefaultTable(),
		recorder:  ports.NopRecorder{},
		logger:    logging.NewNop(),
		carryOver: true,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if len(r.order) == 0 {
		r.order = []Handler{
			handler.NewRegulatory(handler.WithLogger(r.logger)),
			handler.NewAssessment(handler.WithLogger(r.logger)),
			handler.NewAnalytics(handler.WithLogger(r.logger)),
			handler.NewGeneral(handler.WithLogger(r.logger)),
		}
	}
	if r.table == nil {
		return nil, errors.New("router: nil routing table")
	}
	if err := r.table.Validate(); err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	r.handlers = make(map[string]Handler, len(r.order))
	for _, h := range r.order {
		if _, dup := r.handlers[h.Name()]; dup {
			return nil, fmt.Errorf("router: duplicate handler %q", h.Name())
		}
		r.handlers[h.Name()] = h
	}
	for _, name := range r.table.DomainNames() {
		if _, ok := r.handlers[name]; !ok {
			return nil, fmt.Errorf("router: no handler for domain %q", name)
		}
	}
	return r, nil
}

// Table returns the routing table. Callers must not modify it.
func (r *Router) Table() *Table {
	return r.table
}

// Capabilities lists the capability of every registered handler in registration order.
func (r *Router) Capabilities() []domain.DomainCapability {
	out := make([]domain.DomainCapability, 0, len(r.order))
	for _, h := range r.order {
		out = append(out, h.Capability())
	}
	return out
}

// Capability returns the capability of one domain.
func (r *Router) Capability(name string) (domain.DomainCapability, bool) {
	h, ok := r.handlers[name]
	if !ok {
		return domain.DomainCapability{}, false
	}
	return h.Capability(), true
}

// Classify decides the domain of an already sanitized question.
func (r *Router) Classify(question string, sc *domain.SessionContext) Decision {
	norm := matcher.Normalize(question)
	if norm == "" {
		return Decision{Domain: r.table.Default, Default: true}
	}
	dec := r.table.Classify(norm)
	if !dec.Default || !r.carryOver {
		return dec
	}
	prev, ok := sc.LastUserMessage()
	if !ok {
		return dec
	}
	if carried := r.table.Classify(matcher.Normalize(prev)); !carried.Default {
		carried.CarriedOver = true
		return carried
	}
	return dec
}

// Route answers a question. It never fails: handler errors and panics are
// rerouted to the default domain.
func (r *Router) Route(ctx context.Context, question string, sc *domain.SessionContext) domain.AgentResponse {
	start := r.now()

	clean, err := Sanitize(question, r.maxInput)
	if err != nil {
		r.logger.Warn("question rejected by sanitizer", "error", err)
		clean = ""
	}
	clean = strings.TrimSpace(clean)
	if clean == "" {
		r.logger.Debug("empty question", "error", domain.ErrEmptyQuestion)
	}

	dec := r.Classify(clean, sc)
	r.logger.Debug("routing decision",
		"domain", dec.Domain, "term", dec.Term, "score", dec.Score,
		"default", dec.Default, "carried_over", dec.CarriedOver)

	h := r.handlers[dec.Domain]
	resp, err := r.invoke(ctx, h, clean, sc)
	if err != nil {
		r.logger.Error("handler fault", "domain", h.Name(), "error", err)
		resp = r.reroute(ctx, h, clean, sc, err)
	} else {
		resp.Agent = h.Name()
		resp.Confidence = Finalize(resp)
	}

	r.record(ctx, domain.UsageRecord{
		Domain:         resp.Agent,
		Specialist:     resp.Specialist,
		Persona:        sc.PersonaTag(),
		Elapsed:        r.now().Sub(start),
		QuestionPrefix: usage.Prefix(clean),
		Fallback:       resp.Fallback,
		At:             start,
	})
	return resp
}

func (r *Router) reroute(ctx context.Context, failed Handler, question string, sc *domain.SessionContext, cause error) domain.AgentResponse {
	def := r.handlers[r.table.Default]
	if failed.Name() == def.Name() {
		return def.ErrorResponse(sc, cause)
	}
	resp, err := r.invoke(ctx, def, question, sc)
	if err != nil {
		return def.ErrorResponse(sc, errors.Join(cause, err))
	}
	resp.Agent = def.Name()
	resp.Confidence = FallbackConfidence
	resp.Fallback = true
	return resp
}

func (r *Router) invoke(ctx context.Context, h Handler, question string, sc *domain.SessionContext) (resp domain.AgentResponse, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %s panicked: %v", domain.ErrHandlerFault, h.Name(), rec)
		}
	}()
	resp, err = h.Process(ctx, question, sc)
	if err != nil {
		return domain.AgentResponse{}, err
	}
	if strings.TrimSpace(resp.Answer) == "" {
		return domain.AgentResponse{}, fmt.Errorf("%w: %s returned an empty answer", domain.ErrHandlerFault, h.Name())
	}
	return resp, nil
}

func (r *Router) record(ctx context.Context, rec domain.UsageRecord) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Warn("usage recorder panicked", "panic", p)
		}
	}()
	r.recorder.Record(ctx, rec)
}
