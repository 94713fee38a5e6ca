// Package knowledge ships the built-in curated knowledge of every domain.
//
// Entries live in YAML bundles under curated/, one per domain, embedded at build
// time and read with the file adapter. They are the in-process curated set each
// domain handler consults before delegating to a specialist.
package knowledge

import (
	"embed"
	"fmt"

	"github.com/aretw0/triage/pkg/adapters/file"
	"github.com/aretw0/triage/pkg/adapters/memory"
	"github.com/aretw0/triage/pkg/domain"
)

//go:embed curated/*.yaml
var curated embed.FS

// Entries returns a fresh copy of the built-in entries, ordered by bundle name.
func Entries() ([]domain.KnowledgeEntry, error) {
	entries, err := file.LoadFS(curated, "curated/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("built-in knowledge: %w", err)
	}
	return entries, nil
}

// NewStore returns an in-memory store holding the built-in entries.
func NewStore() (*memory.Store, error) {
	entries, err := Entries()
	if err != nil {
		return nil, err
	}
	return memory.NewStore(entries...)
}
