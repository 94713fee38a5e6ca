package domain

// Resolution names the pipeline step that produced a response.
type Resolution string

const (
	ResolutionCurated    Resolution = "curated"
	ResolutionSpecialist Resolution = "specialist"
	ResolutionGeneric    Resolution = "generic"
	ResolutionFault      Resolution = "fault"
)

// Source is a piece of evidence attached to an answer.
type Source struct {
	Type    SourceType `json:"type"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	URL     string     `json:"url,omitempty"`
}

// AgentResponse is the structured answer returned for every question.
type AgentResponse struct {
	Answer           string      `json:"answer"`
	Category         string      `json:"category"`
	Subcategory      string      `json:"subcategory,omitempty"`
	Sources          []Source    `json:"sources"`
	ActionItems      []string    `json:"action_items"`
	Impact           ImpactLevel `json:"impact"`
	RelatedQuestions []string    `json:"related_questions"`
	Confidence       float64     `json:"confidence"`

	// Agent names the handler that produced the response.
	Agent string `json:"agent"`
	// Specialist names the topic specialist, if one answered.
	Specialist string `json:"specialist,omitempty"`
	// Resolution is the pipeline step that answered.
	Resolution Resolution `json:"resolution"`
	// Fallback is set when the response came from the fault reroute path.
	Fallback bool `json:"fallback,omitempty"`
}

// Valid reports whether the response satisfies the envelope invariants.
func (r AgentResponse) Valid() bool {
	return r.Answer != "" && r.Confidence >= 0 && r.Confidence <= 1
}
