package compose

import (
	"strings"

	"github.com/aretw0/triage/pkg/domain"
)

// Substitution is a literal phrase replacement.
type Substitution struct {
	From string
	To   string
}

// apply replaces every occurrence of From that is not already part of an occurrence
// of To. That keeps expansions such as "PCCP" -> "PCCP (...)" idempotent.
func (s Substitution) apply(text string) string {
	if s.From == "" || !strings.Contains(text, s.From) {
		return text
	}
	if !strings.Contains(s.To, s.From) {
		return strings.ReplaceAll(text, s.From, s.To)
	}
	parts := strings.Split(text, s.To)
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, s.From, s.To)
	}
	return strings.Join(parts, s.To)
}

// Personalizer rewrites answer text according to the session context.
type Personalizer struct {
	// Beginner replaces jargon with plain language.
	Beginner []Substitution
	// Expert expands terms with parenthetical technical detail.
	Expert []Substitution
	// Area holds phrases qualified with the therapeutic area; "%s" marks the area.
	Area []Substitution
	// ConciseActionItems caps the action items for the concise response style.
	ConciseActionItems int
}

// DefaultPersonalizer returns the built-in substitution tables.
func DefaultPersonalizer() Personalizer {
	return Personalizer{
		Beginner: []Substitution{
			{"pharmacovigilance", "drug safety monitoring"},
			{"post-market surveillance", "monitoring after launch"},
			{"substantial equivalence", "being similar enough to an already cleared device"},
			{"predicate device", "comparable device that is already cleared"},
			{"SaMD", "software that acts as a medical device"},
			{"QMS", "quality management system"},
			{"CAPA", "corrective and preventive action"},
			{"audit trail", "activity log"},
			{"GxP", "good-practice rules"},
			{"risk-based approach", "approach that puts effort where the risk is highest"},
		},
		Expert: []Substitution{
			{"PCCP", "PCCP (Predetermined Change Control Plan, FDA final guidance 2024)"},
			{"GMLP", "GMLP (Good Machine Learning Practice, 10 guiding principles, FDA/Health Canada/MHRA 2021)"},
			{"SaMD", "SaMD (Software as a Medical Device, IMDRF/SaMD WG/N10)"},
			{"Part 11", "Part 11 (electronic records and electronic signatures)"},
			{"CAPA", "CAPA (21 CFR 820.100 corrective and preventive action)"},
			{"DPIA", "DPIA (GDPR Art. 35 data protection impact assessment)"},
		},
		Area: []Substitution{
			{"your organization", "your %s organization"},
			{"your products", "your %s products"},
			{"your portfolio", "your %s portfolio"},
			{"your clinical programs", "your %s clinical programs"},
		},
		ConciseActionItems: 3,
	}
}

// Simplify applies the beginner substitutions in order.
func (p Personalizer) Simplify(text string) string {
	for _, s := range p.Beginner {
		text = s.apply(text)
	}
	return text
}

// Elaborate applies the expert substitutions in order.
func (p Personalizer) Elaborate(text string) string {
	for _, s := range p.Expert {
		text = s.apply(text)
	}
	return text
}

// Qualify replaces generic organizational phrasing with area-qualified phrasing.
func (p Personalizer) Qualify(text, area string) string {
	area = strings.TrimSpace(area)
	if area == "" {
		return text
	}
	for _, s := range p.Area {
		text = Substitution{From: s.From, To: strings.ReplaceAll(s.To, "%s", area)}.apply(text)
	}
	return text
}

// Text personalizes a single string. The detailed style expands terms for every
// level except beginner.
func (p Personalizer) Text(text string, sc *domain.SessionContext) string {
	level := sc.Expertise()
	switch level {
	case domain.ExpertiseBeginner:
		text = p.Simplify(text)
	case domain.ExpertiseIntermediate:
		// curated wording is written for this level
	case domain.ExpertiseExpert:
		text = p.Elaborate(text)
	}
	if sc.Style() == domain.StyleDetailed && level != domain.ExpertiseBeginner {
		text = p.Elaborate(text)
	}
	return p.Qualify(text, sc.Area())
}

// Prioritize moves the questions that mention a focus area to the front, keeping
// the relative order of both groups.
func Prioritize(questions, focus []string) []string {
	if len(focus) == 0 {
		return questions
	}
	var first, rest []string
	for _, q := range questions {
		if mentionsAny(strings.ToLower(q), focus) {
			first = append(first, q)
		} else {
			rest = append(rest, q)
		}
	}
	return append(first, rest...)
}

func mentionsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// Apply returns a personalized copy of resp.
func (p Personalizer) Apply(resp domain.AgentResponse, sc *domain.SessionContext) domain.AgentResponse {
	if sc == nil {
		return resp
	}
	resp.Answer = p.Text(resp.Answer, sc)
	items := make([]string, len(resp.ActionItems))
	for i, it := range resp.ActionItems {
		items[i] = p.Text(it, sc)
	}
	resp.ActionItems = items
	if focus := sc.Focus(); len(focus) > 0 {
		resp.RelatedQuestions = Prioritize(append([]string(nil), resp.RelatedQuestions...), focus)
	}

	if sc.Style() == domain.StyleConcise {
		resp.Answer = firstParagraph(resp.Answer)
		if p.ConciseActionItems > 0 && len(resp.ActionItems) > p.ConciseActionItems {
			resp.ActionItems = resp.ActionItems[:p.ConciseActionItems]
		}
	}
	return resp
}

func firstParagraph(text string) string {
	if i := strings.Index(text, "\n\n"); i >= 0 {
		return strings.TrimSpace(text[:i])
	}
	return text
}
