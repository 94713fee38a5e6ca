// Package composite fans a knowledge query out to several stores concurrently.
package composite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/triage/internal/logging"
	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/ports"
)

// Store queries every member store in parallel and merges the results in
// member order. An entry ID seen in an earlier store shadows later copies.
type Store struct {
	stores []ports.KnowledgeStore
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report partial failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a composite over stores. Nil members are skipped.
func New(stores []ports.KnowledgeStore, opts ...Option) *Store {
	s := &Store{logger: logging.NewNop()}
	for _, st := range stores {
		if st != nil {
			s.stores = append(s.stores, st)
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of member stores.
func (s *Store) Len() int {
	return len(s.stores)
}

// Query implements ports.KnowledgeStore. Member failures are tolerated as long
// as one member answers; when all fail the joined error wraps
// domain.ErrLookupUnavailable.
func (s *Store) Query(ctx context.Context, q ports.KnowledgeQuery) ([]domain.KnowledgeEntry, error) {
	if len(s.stores) == 0 {
		return nil, nil
	}

	results := make([][]domain.KnowledgeEntry, len(s.stores))
	errs := make([]error, len(s.stores))

	g, gctx := errgroup.WithContext(ctx)
	for i, st := range s.stores {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				errs[i] = gctx.Err()
				return nil
			default:
			}
			results[i], errs[i] = st.Query(gctx, q)
			// member failures never cancel siblings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			s.logger.Warn("knowledge store failed", "store", i, "category", q.Category, "err", err)
		}
	}
	if failed == len(s.stores) {
		return nil, fmt.Errorf("%w: %w", domain.ErrLookupUnavailable, errors.Join(errs...))
	}

	seen := make(map[string]struct{})
	var merged []domain.KnowledgeEntry
	for i, entries := range results {
		if errs[i] != nil {
			continue
		}
		for _, e := range entries {
			if _, dup := seen[e.ID]; dup {
				continue
			}
			seen[e.ID] = struct{}{}
			merged = append(merged, e)
		}
	}
	return merged, nil
}
