package ports

import (
	"context"

	"github.com/aretw0/triage/pkg/domain"
)

// KnowledgeQuery selects candidate entries for one question.
type KnowledgeQuery struct {
	// Category restricts results to entries of this category.
	Category string
	// Tokens are the question keywords. Entries sharing none of them may be omitted.
	// An empty slice asks for every entry of the category.
	Tokens []string
}

// KnowledgeStore is the read-only curated knowledge collaborator.
type KnowledgeStore interface {
	// Query returns zero or more entries for the query.
	// Connectivity failures should be reported as domain.ErrLookupUnavailable.
	Query(ctx context.Context, q KnowledgeQuery) ([]domain.KnowledgeEntry, error)
}

// KnowledgeWriter is implemented by stores that can be populated in-process.
// It is used by loaders and tests, never by the routing pipeline.
type KnowledgeWriter interface {
	Put(ctx context.Context, entries ...domain.KnowledgeEntry) error
}

// KnowledgeLister is implemented by stores that can enumerate their content.
type KnowledgeLister interface {
	List(ctx context.Context) ([]domain.KnowledgeEntry, error)
}
