package compose

import (
	"strings"

	"github.com/aretw0/triage/pkg/domain"
)

// Draft is the raw material of a response.
type Draft struct {
	Domain      string
	Category    string // defaults to Domain
	Subcategory string
	Answer      string
	Citations   []string
	ActionItems []string
	Impact      domain.ImpactLevel
	Agent       string
	Specialist  string
}

// Composer turns drafts into finished responses. It is immutable after New and safe
// for concurrent use.
type Composer struct {
	related      map[string][]string
	personalizer Personalizer
	emptyAnswer  string
}

// Option configures a Composer.
type Option func(*Composer)

// WithRelatedQuestions overrides the related questions of one domain.
func WithRelatedQuestions(domainName string, questions []string) Option {
	return func(c *Composer) {
		c.related[domainName] = append([]string(nil), questions...)
	}
}

// WithPersonalizer replaces the substitution tables.
func WithPersonalizer(p Personalizer) Option {
	return func(c *Composer) {
		c.personalizer = p
	}
}

// New creates a Composer with the default tables.
func New(opts ...Option) *Composer {
	c := &Composer{
		related:      DefaultRelatedQuestions(),
		personalizer: DefaultPersonalizer(),
		emptyAnswer:  "I could not find a specific answer. Could you rephrase the question with more detail?",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Personalizer returns the composer's personalizer.
func (c *Composer) Personalizer() Personalizer {
	return c.personalizer
}

// RelatedQuestions returns a copy of the fixed list for a domain.
func (c *Composer) RelatedQuestions(domainName string) []string {
	return append([]string{}, c.related[domainName]...)
}

// Compose builds a response. Confidence is zero; the router finalizes it.
func (c *Composer) Compose(d Draft, sc *domain.SessionContext) domain.AgentResponse {
	category := d.Category
	if category == "" {
		category = d.Domain
	}
	impact := d.Impact
	if !impact.Valid() {
		impact = domain.ImpactLow
	}
	resp := domain.AgentResponse{
		Answer:           strings.TrimSpace(d.Answer),
		Category:         category,
		Subcategory:      d.Subcategory,
		Sources:          Sources(d.Domain, d.Citations),
		ActionItems:      append([]string{}, d.ActionItems...),
		Impact:           impact,
		RelatedQuestions: c.RelatedQuestions(d.Domain),
		Agent:            d.Agent,
		Specialist:       d.Specialist,
	}
	resp = c.personalizer.Apply(resp, sc)
	if strings.TrimSpace(resp.Answer) == "" {
		resp.Answer = c.emptyAnswer
	}
	return resp
}
