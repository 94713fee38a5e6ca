package ports

import (
	"context"
	"testing"

	"github.com/aretw0/triage/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ContractEntries returns the fixture set expected by RunKnowledgeStoreContract.
// Callers seed their store with exactly these entries before running the contract.
func ContractEntries() []domain.KnowledgeEntry {
	return []domain.KnowledgeEntry{
		{
			ID:          "reg-510k",
			Question:    "What is a 510(k) submission?",
			Variations:  []string{"explain 510k clearance"},
			Category:    domain.DomainRegulatory,
			Subcategory: "Premarket",
			Answer:      "A 510(k) is a premarket notification demonstrating substantial equivalence.",
			ActionItems: []string{"Identify a predicate device"},
			Impact:      domain.ImpactHigh,
			Sources:     []string{"21 CFR 807"},
			Keywords:    []string{"510k", "premarket", "clearance"},
		},
		{
			ID:          "reg-gmlp",
			Question:    "What is good machine learning practice?",
			Category:    domain.DomainRegulatory,
			Subcategory: "GMLP",
			Answer:      "GMLP is a set of ten guiding principles for ML-enabled medical devices.",
			Impact:      domain.ImpactMedium,
			Keywords:    []string{"gmlp", "machine learning"},
		},
		{
			ID:          "asm-score",
			Question:    "How is my readiness score calculated?",
			Category:    domain.DomainAssessment,
			Subcategory: "Scoring",
			Answer:      "Readiness is the weighted mean of section scores.",
			Impact:      domain.ImpactLow,
			Keywords:    []string{"readiness", "score"},
		},
	}
}

// RunKnowledgeStoreContract runs a suite of tests to verify that a KnowledgeStore
// implementation adheres to the interface contract. The store must be seeded with
// ContractEntries().
func RunKnowledgeStoreContract(t *testing.T, store KnowledgeStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Query by category and token", func(t *testing.T) {
		got, err := store.Query(ctx, KnowledgeQuery{
			Category: domain.DomainRegulatory,
			Tokens:   []string{"510k"},
		})
		require.NoError(t, err)
		ids := entryIDs(got)
		assert.Contains(t, ids, "reg-510k")
		for _, e := range got {
			assert.Equal(t, domain.DomainRegulatory, e.Category, "category filter must hold")
		}
	})

	t.Run("Entry round trip", func(t *testing.T) {
		got, err := store.Query(ctx, KnowledgeQuery{
			Category: domain.DomainRegulatory,
			Tokens:   []string{"premarket"},
		})
		require.NoError(t, err)
		var found *domain.KnowledgeEntry
		for i := range got {
			if got[i].ID == "reg-510k" {
				found = &got[i]
			}
		}
		require.NotNil(t, found, "reg-510k should be returned")
		want := ContractEntries()[0]
		assert.Equal(t, want.Question, found.Question)
		assert.Equal(t, want.Answer, found.Answer)
		assert.Equal(t, want.Variations, found.Variations)
		assert.Equal(t, want.ActionItems, found.ActionItems)
		assert.Equal(t, want.Sources, found.Sources)
		assert.Equal(t, want.Impact, found.Impact)
		assert.ElementsMatch(t, want.Keywords, found.Keywords)
	})

	t.Run("Other category excluded", func(t *testing.T) {
		got, err := store.Query(ctx, KnowledgeQuery{
			Category: domain.DomainAssessment,
			Tokens:   []string{"510k"},
		})
		require.NoError(t, err)
		assert.NotContains(t, entryIDs(got), "reg-510k")
	})

	t.Run("Unknown tokens", func(t *testing.T) {
		got, err := store.Query(ctx, KnowledgeQuery{
			Category: domain.DomainRegulatory,
			Tokens:   []string{"xyzzy"},
		})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Empty tokens returns category", func(t *testing.T) {
		got, err := store.Query(ctx, KnowledgeQuery{Category: domain.DomainRegulatory})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"reg-510k", "reg-gmlp"}, entryIDs(got))
	})
}

func entryIDs(entries []domain.KnowledgeEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}
