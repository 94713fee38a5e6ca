package testutils

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"

	loamstore "github.com/aretw0/triage/pkg/adapters/loam"
	"github.com/aretw0/triage/pkg/domain"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// SetupKnowledgeRepo initializes an unversioned repository seeded with entries.
func SetupKnowledgeRepo(t *testing.T, entries ...domain.KnowledgeEntry) (string, core.Repository) {
	t.Helper()

	dir, repo := SetupTestRepo(t, loam.WithVersioning(false))
	require.NoError(t, loamstore.Seed(context.Background(), repo, entries...), "Failed to seed knowledge repo")
	return dir, repo
}
