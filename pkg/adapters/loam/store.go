// Package loam serves curated knowledge stored as markdown documents with
// frontmatter in a Loam repository.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/triage/pkg/adapters/memory"
	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/ports"
)

// Store implements ports.KnowledgeStore over a Loam repository. Documents are
// read into an in-memory index by Load; queries never touch the disk.
type Store struct {
	Repo  *loam.TypedRepository[EntryMetadata]
	index atomic.Pointer[memory.Store]
}

// New creates a store. Call Load before querying.
func New(repo *loam.TypedRepository[EntryMetadata]) *Store {
	s := &Store{Repo: repo}
	empty, _ := memory.NewStore()
	s.index.Store(empty)
	return s
}

// Open initializes a read-only repository at dir and loads it.
func Open(ctx context.Context, dir string) (*Store, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve knowledge dir: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init loam repo at %s: %w", absPath, err)
	}
	s := New(loam.NewTypedRepository[EntryMetadata](repo))
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads every document, in ID order, and replaces the index. List only
// yields document IDs, so each document is fetched with Get before decoding.
func (s *Store) Load(ctx context.Context) error {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loam list failed: %w", err)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	seen := make(map[string]string)
	entries := make([]domain.KnowledgeEntry, 0, len(docs))
	for _, listed := range docs {
		doc, err := s.Repo.Get(ctx, listed.ID)
		if err != nil {
			return fmt.Errorf("loam get failed for %s: %w", listed.ID, err)
		}
		e, err := toEntry(listed.ID, doc.Data, doc.Content)
		if err != nil {
			return err
		}
		if prev, ok := seen[e.ID]; ok {
			return fmt.Errorf("collision detected: entry '%s' is defined in both '%s' and '%s'", e.ID, prev, listed.ID)
		}
		seen[e.ID] = listed.ID
		entries = append(entries, e)
	}

	idx, err := memory.NewStore(entries...)
	if err != nil {
		return err
	}
	s.index.Store(idx)
	return nil
}

// Query implements ports.KnowledgeStore.
func (s *Store) Query(ctx context.Context, q ports.KnowledgeQuery) ([]domain.KnowledgeEntry, error) {
	return s.index.Load().Query(ctx, q)
}

// List returns the indexed entries.
func (s *Store) List(ctx context.Context) ([]domain.KnowledgeEntry, error) {
	return s.index.Load().List(ctx)
}

// Get reads one entry straight from the repository.
func (s *Store) Get(ctx context.Context, id string) (domain.KnowledgeEntry, error) {
	doc, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.KnowledgeEntry{}, fmt.Errorf("%w: %s: %v", domain.ErrEntryNotFound, id, err)
	}
	return toEntry(doc.ID, doc.Data, doc.Content)
}

// Watch reloads the index whenever a document changes and forwards the changed
// document ID. Reload failures keep the previous index.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	events, err := s.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				if err := s.Load(ctx); err != nil {
					continue
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func toEntry(docID string, meta EntryMetadata, content string) (domain.KnowledgeEntry, error) {
	id := meta.ID
	if id == "" {
		id = docID
	}
	answer := meta.Answer
	if strings.TrimSpace(answer) == "" {
		answer = content
	}
	sources, err := resolveSources(meta.Sources)
	if err != nil {
		return domain.KnowledgeEntry{}, fmt.Errorf("%s: %w", docID, err)
	}

	e := domain.KnowledgeEntry{
		ID:          trimExtension(id),
		Question:    meta.Question,
		Variations:  meta.Variations,
		Category:    meta.Category,
		Subcategory: meta.Subcategory,
		Answer:      strings.TrimSpace(answer),
		ActionItems: meta.ActionItems,
		Impact:      domain.ImpactLevel(strings.ToLower(meta.Impact)),
		Sources:     sources,
		Keywords:    meta.Keywords,
	}
	if err := e.Validate(); err != nil {
		return domain.KnowledgeEntry{}, fmt.Errorf("%s: %w", docID, err)
	}
	return e, nil
}

// resolveSources accepts plain labels and inline source maps.
func resolveSources(raw []any) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case map[string]any, map[any]any:
			var ref SourceRef
			if err := mapstructure.Decode(v, &ref); err != nil {
				return nil, fmt.Errorf("failed to decode inline source: %w", err)
			}
			label := ref.Label
			if label == "" {
				label = ref.Title
			}
			if label == "" {
				return nil, fmt.Errorf("inline source missing label")
			}
			out = append(out, label)
		default:
			return nil, fmt.Errorf("invalid source definition type: %T", v)
		}
	}
	return out, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

type frontmatter struct {
	ID          string   `yaml:"id"`
	Question    string   `yaml:"question"`
	Variations  []string `yaml:"variations,omitempty"`
	Category    string   `yaml:"category"`
	Subcategory string   `yaml:"subcategory,omitempty"`
	ActionItems []string `yaml:"action_items,omitempty"`
	Impact      string   `yaml:"impact,omitempty"`
	Sources     []string `yaml:"sources,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty"`
}

// Seed writes entries into a writable repository as markdown documents.
func Seed(ctx context.Context, repo core.Repository, entries ...domain.KnowledgeEntry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		head, err := yaml.Marshal(frontmatter{
			ID:          e.ID,
			Question:    e.Question,
			Variations:  e.Variations,
			Category:    e.Category,
			Subcategory: e.Subcategory,
			ActionItems: e.ActionItems,
			Impact:      string(e.Impact),
			Sources:     e.Sources,
			Keywords:    e.Keywords,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal frontmatter for %s: %w", e.ID, err)
		}
		doc := core.Document{
			ID:      e.ID + ".md",
			Content: "---\n" + string(head) + "---\n" + e.Answer + "\n",
		}
		if err := repo.Save(ctx, doc); err != nil {
			return fmt.Errorf("failed to save %s: %w", e.ID, err)
		}
	}
	return nil
}
