package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/triage/internal/logging"
	"github.com/aretw0/triage/pkg/compose"
	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/matcher"
	"github.com/aretw0/triage/pkg/ports"
	"github.com/aretw0/triage/pkg/specialist"
)

const (
	// CuratedConfidence is the confidence of a curated knowledge match.
	CuratedConfidence = 0.9
	// GenericConfidence is the confidence of the clarifying fallback.
	GenericConfidence = 0.3
	// ErrorConfidence is the confidence of ErrorResponse.
	ErrorConfidence = 0.1
	// DefaultLookupTimeout bounds a single knowledge store query.
	DefaultLookupTimeout = 2 * time.Second
)

const errorAnswer = "Something went wrong while preparing an answer. Please try again, or rephrase the question."

// Clarifier builds the generic fallback answer of a domain.
type Clarifier func(sc *domain.SessionContext) string

// Handler answers questions for one domain.
type Handler struct {
	capability    domain.DomainCapability
	store         ports.KnowledgeStore
	specialists   []*specialist.Specialist
	composer      *compose.Composer
	clarify       Clarifier
	logger        *slog.Logger
	lookupTimeout time.Duration
}

// Option configures a Handler.
type Option func(*Handler)

// WithKnowledgeStore sets the curated knowledge store. Without one the lookup step never matches.
func WithKnowledgeStore(store ports.KnowledgeStore) Option {
	return func(h *Handler) {
		h.store = store
	}
}

// WithSpecialists replaces the specialists consulted by the delegation step.
func WithSpecialists(specs ...*specialist.Specialist) Option {
	return func(h *Handler) {
		h.specialists = specs
	}
}

// WithComposer sets the response composer.
func WithComposer(c *compose.Composer) Option {
	return func(h *Handler) {
		h.composer = c
	}
}

// WithClarifier sets the generic fallback answer builder.
func WithClarifier(c Clarifier) Option {
	return func(h *Handler) {
		h.clarify = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithLookupTimeout bounds each knowledge store query.
func WithLookupTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.lookupTimeout = d
		}
	}
}

// New creates a Handler for the capability.
func New(capability domain.DomainCapability, opts ...Option) *Handler {
	h := &Handler{
		capability:    capability,
		composer:      compose.New(),
		logger:        logging.NewNop(),
		lookupTimeout: DefaultLookupTimeout,
	}
	h.clarify = func(*domain.SessionContext) string {
		return fmt.Sprintf("I can help with %s questions. Could you add more detail about what you need?", capability.Domain)
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name returns the domain name of the handler.
func (h *Handler) Name() string {
	return h.capability.Domain
}

// Capability returns a copy of the handler's capability.
func (h *Handler) Capability() domain.DomainCapability {
	c := h.capability
	c.Subdomains = append([]string(nil), c.Subdomains...)
	c.Keywords = append([]string(nil), c.Keywords...)
	c.ExpertiseAreas = append([]string(nil), c.ExpertiseAreas...)
	return c
}

// Specialists returns the names of the consulted specialists in declaration order.
func (h *Handler) Specialists() []string {
	names := make([]string, 0, len(h.specialists))
	for _, s := range h.specialists {
		names = append(names, s.Name)
	}
	return names
}

type step struct {
	name string
	run  func(ctx context.Context, question string, sc *domain.SessionContext) Result
}

func (h *Handler) steps() []step {
	return []step{
		{"lookup", h.lookup},
		{"specialist", h.delegate},
		{"generic", h.fallback},
	}
}

// Process answers the question. The returned response carries the step confidence;
// the router finalizes it. A failing step is reported as domain.ErrHandlerFault.
func (h *Handler) Process(ctx context.Context, question string, sc *domain.SessionContext) (domain.AgentResponse, error) {
	for _, s := range h.steps() {
		res := s.run(ctx, question, sc)
		h.logger.Debug("handler step", "domain", h.Name(), "step", s.name, "outcome", res.Outcome.String())
		switch res.Outcome {
		case Matched:
			res.Response.Agent = h.Name()
			return res.Response, nil
		case Fault:
			return domain.AgentResponse{}, fmt.Errorf("%w: %s %s: %w", domain.ErrHandlerFault, h.Name(), s.name, res.Err)
		}
	}
	return domain.AgentResponse{}, fmt.Errorf("%s: %w", h.Name(), domain.ErrNoMatch)
}

// ErrorResponse is the well-formed answer used when this handler cannot answer at all.
func (h *Handler) ErrorResponse(sc *domain.SessionContext, err error) domain.AgentResponse {
	if err != nil {
		h.logger.Error("handler failed", "domain", h.Name(), "error", err)
	}
	resp := h.composer.Compose(compose.Draft{
		Domain: h.capability.Domain,
		Answer: errorAnswer,
		Impact: domain.ImpactLow,
		Agent:  h.Name(),
	}, sc)
	resp.Confidence = ErrorConfidence
	resp.Resolution = domain.ResolutionFault
	resp.Fallback = true
	return resp
}

func (h *Handler) lookup(ctx context.Context, question string, sc *domain.SessionContext) Result {
	if h.store == nil {
		return noMatch(nil)
	}
	tokens := matcher.Keywords(question)
	if len(tokens) == 0 {
		return noMatch(nil)
	}

	entries, err := h.query(ctx, ports.KnowledgeQuery{Category: h.capability.Domain, Tokens: tokens})
	if err != nil {
		h.logger.Warn("knowledge lookup unavailable", "domain", h.Name(), "error", err)
		return noMatch(err)
	}

	entry, ok := matcher.Match(question, entries, h.capability.Domain)
	if !ok {
		return noMatch(domain.ErrNoMatch)
	}
	h.logger.Debug("curated match", "domain", h.Name(), "entry", entry.ID)

	resp := h.composer.Compose(compose.Draft{
		Domain:      h.capability.Domain,
		Category:    entry.Category,
		Subcategory: entry.Subcategory,
		Answer:      entry.Answer,
		Citations:   entry.Sources,
		ActionItems: entry.ActionItems,
		Impact:      entry.Impact,
	}, sc)
	resp.Confidence = CuratedConfidence
	resp.Resolution = domain.ResolutionCurated
	return matched(resp)
}

// query runs the store query under the lookup timeout. A store that ignores its
// context is abandoned when the deadline passes.
func (h *Handler) query(ctx context.Context, q ports.KnowledgeQuery) ([]domain.KnowledgeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, h.lookupTimeout)
	defer cancel()

	type reply struct {
		entries []domain.KnowledgeEntry
		err     error
	}
	ch := make(chan reply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- reply{err: fmt.Errorf("store panic: %v", r)}
			}
		}()
		entries, err := h.store.Query(ctx, q)
		ch <- reply{entries: entries, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil && !errors.Is(r.err, domain.ErrLookupUnavailable) {
			return nil, fmt.Errorf("%w: %w", domain.ErrLookupUnavailable, r.err)
		}
		return r.entries, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", domain.ErrLookupUnavailable, ctx.Err())
	}
}

func (h *Handler) delegate(_ context.Context, question string, sc *domain.SessionContext) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = fault(fmt.Errorf("specialist panic: %v", r))
		}
	}()

	s, ratio := specialist.Select(h.specialists, question)
	if s == nil {
		return noMatch(nil)
	}
	resp, ok := s.Respond(h.composer, question, sc)
	if !ok {
		h.logger.Debug("specialist had no branch", "domain", h.Name(), "specialist", s.Name, "overlap", ratio)
		return noMatch(nil)
	}
	return matched(resp)
}

func (h *Handler) fallback(_ context.Context, _ string, sc *domain.SessionContext) Result {
	resp := h.composer.Compose(compose.Draft{
		Domain: h.capability.Domain,
		Answer: h.clarify(sc),
		Impact: domain.ImpactLow,
	}, sc)
	resp.Confidence = GenericConfidence
	resp.Resolution = domain.ResolutionGeneric
	return matched(resp)
}
