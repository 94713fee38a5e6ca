package domain

import (
	"fmt"
	"strings"
)

// KnowledgeEntry is a curated question/answer record. Entries are created by an
// external seeding process and are read-only from the engine's point of view.
type KnowledgeEntry struct {
	ID          string      `json:"id" yaml:"id" toml:"id" mapstructure:"id"`
	Question    string      `json:"question" yaml:"question" toml:"question" mapstructure:"question"`
	Variations  []string    `json:"variations,omitempty" yaml:"variations,omitempty" toml:"variations,omitempty" mapstructure:"variations"`
	Category    string      `json:"category" yaml:"category" toml:"category" mapstructure:"category"`
	Subcategory string      `json:"subcategory,omitempty" yaml:"subcategory,omitempty" toml:"subcategory,omitempty" mapstructure:"subcategory"`
	Answer      string      `json:"answer" yaml:"answer" toml:"answer" mapstructure:"answer"`
	ActionItems []string    `json:"action_items,omitempty" yaml:"action_items,omitempty" toml:"action_items,omitempty" mapstructure:"action_items"`
	Impact      ImpactLevel `json:"impact,omitempty" yaml:"impact,omitempty" toml:"impact,omitempty" mapstructure:"impact"`
	Sources     []string    `json:"sources,omitempty" yaml:"sources,omitempty" toml:"sources,omitempty" mapstructure:"sources"`
	Keywords    []string    `json:"keywords,omitempty" yaml:"keywords,omitempty" toml:"keywords,omitempty" mapstructure:"keywords"`
}

// Validate checks the fields every store relies on.
func (e KnowledgeEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEntry)
	}
	if strings.TrimSpace(e.Question) == "" {
		return fmt.Errorf("%w: %s: missing question", ErrInvalidEntry, e.ID)
	}
	if strings.TrimSpace(e.Answer) == "" {
		return fmt.Errorf("%w: %s: missing answer", ErrInvalidEntry, e.ID)
	}
	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("%w: %s: missing category", ErrInvalidEntry, e.ID)
	}
	if e.Impact != "" && !e.Impact.Valid() {
		return fmt.Errorf("%w: %s: unknown impact %q", ErrInvalidEntry, e.ID, e.Impact)
	}
	return nil
}

// SearchText is the lowercase text used for token pre-filtering in stores.
func (e KnowledgeEntry) SearchText() string {
	parts := make([]string, 0, 2+len(e.Variations)+len(e.Keywords))
	parts = append(parts, e.Question)
	parts = append(parts, e.Variations...)
	parts = append(parts, e.Keywords...)
	return strings.ToLower(strings.Join(parts, " "))
}
