package loam_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/triage/internal/testutils"
	loamstore "github.com/aretw0/triage/pkg/adapters/loam"
	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/ports"
)

func TestLoamStore_Contract(t *testing.T) {
	_, repo := testutils.SetupKnowledgeRepo(t, ports.ContractEntries()...)

	store := loamstore.New(loam.NewTypedRepository[loamstore.EntryMetadata](repo))
	require.NoError(t, store.Load(context.Background()))

	ports.RunKnowledgeStoreContract(t, store)
}

func TestLoamStore_LoadReadsDocumentBodies(t *testing.T) {
	_, repo := testutils.SetupKnowledgeRepo(t, ports.ContractEntries()...)
	store := loamstore.New(loam.NewTypedRepository[loamstore.EntryMetadata](repo))
	require.NoError(t, store.Load(context.Background()))

	all, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)

	byID := make(map[string]domain.KnowledgeEntry, len(all))
	ids := make([]string, 0, len(all))
	for _, e := range all {
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"asm-score", "reg-510k", "reg-gmlp"}, ids)
	for _, want := range ports.ContractEntries() {
		got, ok := byID[want.ID]
		require.True(t, ok, want.ID)
		assert.Equal(t, want.Question, got.Question)
		assert.Equal(t, want.Category, got.Category)
		assert.Equal(t, want.Answer, got.Answer)
	}
}

func TestLoamStore_Get(t *testing.T) {
	_, repo := testutils.SetupKnowledgeRepo(t, ports.ContractEntries()...)
	store := loamstore.New(loam.NewTypedRepository[loamstore.EntryMetadata](repo))

	e, err := store.Get(context.Background(), "reg-gmlp")
	require.NoError(t, err)
	assert.Equal(t, "GMLP", e.Subcategory)
	assert.Equal(t, domain.ImpactMedium, e.Impact)

	_, err = store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestLoamStore_InlineSourcesAndImplicitID(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t, loam.WithVersioning(false))

	content := `---
question: How do I run a DPIA?
category: general
impact: High
sources:
  - GDPR Article 9
  - label: Internal DPIA template
    url: https://intranet.example/dpia
keywords: [dpia]
---
Describe the processing, assess necessity and record mitigations.
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gen-dpia.md"), []byte(content), 0644))

	store := loamstore.New(loam.NewTypedRepository[loamstore.EntryMetadata](repo))
	require.NoError(t, store.Load(context.Background()))

	all, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "gen-dpia", all[0].ID)
	assert.Equal(t, domain.ImpactHigh, all[0].Impact)
	assert.Equal(t, []string{"GDPR Article 9", "Internal DPIA template"}, all[0].Sources)
	assert.Equal(t, "Describe the processing, assess necessity and record mitigations.", all[0].Answer)
}

func TestLoamStore_InvalidDocument(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t, loam.WithVersioning(false))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.md"), []byte("---\nquestion: Orphan\n---\nNo category.\n"), 0644))

	store := loamstore.New(loam.NewTypedRepository[loamstore.EntryMetadata](repo))
	assert.ErrorIs(t, store.Load(context.Background()), domain.ErrInvalidEntry)
}

func TestOpen(t *testing.T) {
	dir, _ := testutils.SetupKnowledgeRepo(t, ports.ContractEntries()...)

	store, err := loamstore.Open(context.Background(), dir)
	require.NoError(t, err)

	all, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
