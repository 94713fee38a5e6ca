package specialist

import (
	"github.com/aretw0/triage/pkg/compose"
	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/matcher"
)

// Mode decides how a trigger combines its phrases.
type Mode int

const (
	// Any fires when at least one phrase is present.
	Any Mode = iota
	// All fires only when every phrase is present.
	All
)

// Trigger is the condition of a branch. Phrases are matched on word boundaries
// against the normalized question.
type Trigger struct {
	Phrases []string
	Mode    Mode
}

// Fires reports whether the trigger matches the normalized question.
func (t Trigger) Fires(normQuestion string) bool {
	if len(t.Phrases) == 0 {
		return false
	}
	for _, p := range t.Phrases {
		hit := matcher.ContainsPhrase(normQuestion, matcher.Normalize(p))
		if hit && t.Mode == Any {
			return true
		}
		if !hit && t.Mode == All {
			return false
		}
	}
	return t.Mode == All
}

// Branch is one rung of a specialist's ladder.
type Branch struct {
	Name        string
	Trigger     Trigger
	Subcategory string
	Answer      string
	Sources     []string
	ActionItems []string
	Impact      domain.ImpactLevel
	Confidence  float64
}

// Specialist answers narrow questions inside one domain.
type Specialist struct {
	Name     string
	Domain   string
	Keywords []string
	Branches []Branch
}

// Overlap is the share of the specialist's keywords present in the normalized question.
func (s *Specialist) Overlap(normQuestion string) float64 {
	if len(s.Keywords) == 0 {
		return 0
	}
	hits := 0
	for _, kw := range s.Keywords {
		if matcher.ContainsPhrase(normQuestion, matcher.Normalize(kw)) {
			hits++
		}
	}
	return float64(hits) / float64(len(s.Keywords))
}

// Branch returns the first branch that fires on the question.
func (s *Specialist) Branch(question string) (Branch, bool) {
	norm := matcher.Normalize(question)
	for _, b := range s.Branches {
		if b.Trigger.Fires(norm) {
			return b, true
		}
	}
	return Branch{}, false
}

// Respond composes the answer of the first firing branch. The response carries the
// branch confidence and the specialist name.
func (s *Specialist) Respond(c *compose.Composer, question string, sc *domain.SessionContext) (domain.AgentResponse, bool) {
	b, ok := s.Branch(question)
	if !ok {
		return domain.AgentResponse{}, false
	}
	resp := c.Compose(compose.Draft{
		Domain:      s.Domain,
		Subcategory: b.Subcategory,
		Answer:      b.Answer,
		Citations:   b.Sources,
		ActionItems: b.ActionItems,
		Impact:      b.Impact,
		Specialist:  s.Name,
	}, sc)
	resp.Confidence = b.Confidence
	resp.Resolution = domain.ResolutionSpecialist
	return resp, true
}

// Select returns the specialist with the highest keyword overlap. Ties go to the
// earlier specialist; a zero overlap selects nothing.
func Select(specs []*Specialist, question string) (*Specialist, float64) {
	norm := matcher.Normalize(question)
	var best *Specialist
	bestRatio := 0.0
	for _, s := range specs {
		if r := s.Overlap(norm); r > bestRatio {
			best, bestRatio = s, r
		}
	}
	return best, bestRatio
}
