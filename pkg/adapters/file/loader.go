// Package file loads curated knowledge bundles from YAML, JSON or TOML files.
package file

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/triage/pkg/adapters/memory"
	"github.com/aretw0/triage/pkg/domain"
)

// Bundle is the on-disk layout of a knowledge file.
type Bundle struct {
	Entries []domain.KnowledgeEntry `yaml:"entries" json:"entries" toml:"entries"`
}

// Load reads one bundle. The format follows the file extension; anything that is
// not .json or .toml is parsed as YAML.
func Load(path string) ([]domain.KnowledgeEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge bundle: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes and validates a bundle. name only selects the format and labels errors.
func Parse(name string, data []byte) ([]domain.KnowledgeEntry, error) {
	var (
		b   Bundle
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		err = json.Unmarshal(data, &b)
	case ".toml":
		err = toml.Unmarshal(data, &b)
	default:
		err = yaml.Unmarshal(data, &b)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	for _, e := range b.Entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return b.Entries, nil
}

// LoadFS reads every bundle matching pattern in fsys, in lexical order. An ID
// defined in two files is an error.
func LoadFS(fsys fs.FS, pattern string) ([]domain.KnowledgeEntry, error) {
	paths, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid bundle pattern %q: %w", pattern, err)
	}
	sort.Strings(paths)

	seen := make(map[string]string)
	var out []domain.KnowledgeEntry
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("failed to read knowledge bundle: %w", err)
		}
		entries, err := Parse(p, data)
		if err != nil {
			return nil, err
		}
		if err := collect(seen, p, entries, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// LoadAll reads several bundles in order. An ID defined in two files is an error.
func LoadAll(paths ...string) ([]domain.KnowledgeEntry, error) {
	seen := make(map[string]string)
	var out []domain.KnowledgeEntry
	for _, p := range paths {
		entries, err := Load(p)
		if err != nil {
			return nil, err
		}
		if err := collect(seen, p, entries, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func collect(seen map[string]string, path string, entries []domain.KnowledgeEntry, out *[]domain.KnowledgeEntry) error {
	for _, e := range entries {
		if prev, ok := seen[e.ID]; ok {
			return fmt.Errorf("collision detected: entry '%s' is defined in both '%s' and '%s'", e.ID, prev, path)
		}
		seen[e.ID] = path
		*out = append(*out, e)
	}
	return nil
}

// NewStore loads the bundles into an in-memory store.
func NewStore(paths ...string) (*memory.Store, error) {
	entries, err := LoadAll(paths...)
	if err != nil {
		return nil, err
	}
	return memory.NewStore(entries...)
}
