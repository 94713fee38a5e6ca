package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/matcher"
	"github.com/aretw0/triage/pkg/ports"
)

type record struct {
	entry  domain.KnowledgeEntry
	tokens map[string]struct{}
}

// Store implements ports.KnowledgeStore in memory. Entries are returned in
// insertion order. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	data  map[string]*record
	order []string
}

// NewStore creates a store seeded with entries. Invalid entries are rejected.
func NewStore(entries ...domain.KnowledgeEntry) (*Store, error) {
	s := &Store{data: make(map[string]*record)}
	if err := s.Put(context.Background(), entries...); err != nil {
		return nil, err
	}
	return s, nil
}

// Put validates and stores entries, replacing entries with the same ID.
func (s *Store) Put(_ context.Context, entries ...domain.KnowledgeEntry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		rec := &record{entry: clone(e), tokens: tokenSet(e)}
		if _, exists := s.data[e.ID]; !exists {
			s.order = append(s.order, e.ID)
		}
		s.data[e.ID] = rec
	}
	return nil
}

// Query implements ports.KnowledgeStore.
func (s *Store) Query(ctx context.Context, q ports.KnowledgeQuery) ([]domain.KnowledgeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLookupUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.KnowledgeEntry
	for _, id := range s.order {
		rec := s.data[id]
		if rec.entry.Category != q.Category {
			continue
		}
		if len(q.Tokens) > 0 && !sharesToken(rec.tokens, q.Tokens) {
			continue
		}
		out = append(out, clone(rec.entry))
	}
	return out, nil
}

// Get returns one entry by ID.
func (s *Store) Get(_ context.Context, id string) (domain.KnowledgeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[id]
	if !ok {
		return domain.KnowledgeEntry{}, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
	}
	return clone(rec.entry), nil
}

// List returns every entry in insertion order.
func (s *Store) List(_ context.Context) ([]domain.KnowledgeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.KnowledgeEntry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.data[id].entry))
	}
	return out, nil
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Tokens returns the index tokens of an entry: the keywords of its question,
// variations and keyword list.
func Tokens(e domain.KnowledgeEntry) []string {
	texts := make([]string, 0, 1+len(e.Variations)+len(e.Keywords))
	texts = append(texts, e.Question)
	texts = append(texts, e.Variations...)
	texts = append(texts, e.Keywords...)
	return matcher.EntryTokens(texts...)
}

func tokenSet(e domain.KnowledgeEntry) map[string]struct{} {
	toks := Tokens(e)
	set := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		set[t] = struct{}{}
	}
	return set
}

func sharesToken(set map[string]struct{}, tokens []string) bool {
	for _, t := range tokens {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// clone copies the slices so callers cannot mutate stored entries.
func clone(e domain.KnowledgeEntry) domain.KnowledgeEntry {
	e.Variations = cloneStrings(e.Variations)
	e.ActionItems = cloneStrings(e.ActionItems)
	e.Sources = cloneStrings(e.Sources)
	e.Keywords = cloneStrings(e.Keywords)
	return e
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
