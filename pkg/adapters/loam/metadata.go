package loam

// EntryMetadata is the frontmatter of a knowledge document. The document body
// is the answer unless Answer is set.
type EntryMetadata struct {
	ID          string   `json:"id" mapstructure:"id"`
	Question    string   `json:"question" mapstructure:"question"`
	Variations  []string `json:"variations" mapstructure:"variations"`
	Category    string   `json:"category" mapstructure:"category"`
	Subcategory string   `json:"subcategory" mapstructure:"subcategory"`
	Answer      string   `json:"answer,omitempty" mapstructure:"answer"`
	ActionItems []string `json:"action_items" mapstructure:"action_items"`
	Impact      string   `json:"impact" mapstructure:"impact"`
	Keywords    []string `json:"keywords" mapstructure:"keywords"`

	// Sources holds plain labels or inline maps ({label: ..., url: ...}).
	Sources []any `json:"sources" mapstructure:"sources"`
}

// SourceRef is the inline form of a source.
type SourceRef struct {
	Label string `json:"label" mapstructure:"label"`
	Title string `json:"title" mapstructure:"title"`
	URL   string `json:"url" mapstructure:"url"`
}
