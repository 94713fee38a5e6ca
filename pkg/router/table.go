package router

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/matcher"
)

// DomainKeywords is the scoring keyword list of one domain.
type DomainKeywords struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// PriorityTerm routes straight to Domain when Term is present in the question.
type PriorityTerm struct {
	Term   string `yaml:"term" json:"term"`
	Domain string `yaml:"domain" json:"domain"`
}

// Table is the routing configuration. Declaration order of Domains breaks score
// ties; declaration order of Priority decides which term wins.
// A Table must not be modified once handed to a Router.
type Table struct {
	Domains  []DomainKeywords `yaml:"domains" json:"domains"`
	Priority []PriorityTerm   `yaml:"priority" json:"priority"`
	Default  string           `yaml:"default" json:"default"`
}

// DefaultTable returns the built-in routing table.
func DefaultTable() *Table {
	return &Table{
		Domains: []DomainKeywords{
			{Name: domain.DomainRegulatory, Keywords: []string{
				"regulation", "regulations", "regulatory", "regulator", "guidance", "guidelines", "guideline",
				"submission", "approval", "clearance", "510k", "510(k)", "pma", "de novo", "notified body", "ce mark",
				"agency", "ai act", "mdr", "ivdr", "pccp", "gmlp", "samd", "premarket", "postmarket",
				"law", "legal", "cybersecurity", "part 11", "clinical trial",
			}},
			{Name: domain.DomainAssessment, Keywords: []string{
				"assessment", "assess", "questionnaire", "readiness", "maturity", "score", "scoring",
				"gap", "gaps", "evaluate", "evaluation", "audit", "self assessment", "section", "sections",
				"remediation",
			}},
			{Name: domain.DomainAnalytics, Keywords: []string{
				"analytics", "benchmark", "benchmarks", "trend", "trends", "metric", "metrics", "dashboard",
				"report", "reporting", "compare", "comparison", "heatmap", "statistics", "kpi", "insights",
			}},
			{Name: domain.DomainGeneral, Keywords: []string{
				"compliance", "policy", "policies", "governance", "privacy", "ethics", "bias", "training",
				"sop", "documentation", "risk", "framework", "program", "consent", "security", "phi",
				"personal data",
			}},
		},
		Priority: []PriorityTerm{
			{Term: "fda", Domain: domain.DomainRegulatory},
			{Term: "ema", Domain: domain.DomainRegulatory},
			{Term: "mhra", Domain: domain.DomainRegulatory},
			{Term: "eu ai act", Domain: domain.DomainRegulatory},
			{Term: "hipaa", Domain: domain.DomainGeneral},
			{Term: "gdpr", Domain: domain.DomainGeneral},
			{Term: "readiness score", Domain: domain.DomainAssessment},
			{Term: "benchmark", Domain: domain.DomainAnalytics},
		},
		Default: domain.DomainGeneral,
	}
}

// LoadTable reads a routing table from a YAML (or JSON) file and validates it.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routing table: %w", err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse routing table %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid routing table %s: %w", path, err)
	}
	return &t, nil
}

// Validate checks the table for internal consistency.
func (t *Table) Validate() error {
	if strings.TrimSpace(t.Default) == "" {
		return fmt.Errorf("missing default domain")
	}
	names := make(map[string]bool, len(t.Domains))
	for i, d := range t.Domains {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("domain #%d has no name", i)
		}
		if names[d.Name] {
			return fmt.Errorf("duplicate domain %q", d.Name)
		}
		names[d.Name] = true
	}
	if !names[t.Default] {
		return fmt.Errorf("default domain %q is not declared", t.Default)
	}
	for i, p := range t.Priority {
		if matcher.Normalize(p.Term) == "" {
			return fmt.Errorf("priority term #%d is empty", i)
		}
		if !names[p.Domain] {
			return fmt.Errorf("priority term %q targets undeclared domain %q", p.Term, p.Domain)
		}
	}
	return nil
}

// DomainNames returns the declared domains in order.
func (t *Table) DomainNames() []string {
	out := make([]string, 0, len(t.Domains))
	for _, d := range t.Domains {
		out = append(out, d.Name)
	}
	return out
}

// Decision explains how a question was routed.
type Decision struct {
	Domain string `json:"domain"`
	// Term is the priority term that fired, if any.
	Term string `json:"term,omitempty"`
	// Score is the keyword score of the winning domain.
	Score int `json:"score"`
	// Default is set when every domain scored zero.
	Default bool `json:"default,omitempty"`
	// CarriedOver is set when the domain came from the conversation history.
	CarriedOver bool `json:"carried_over,omitempty"`
}

// Classify routes a normalized question with the table alone.
func (t *Table) Classify(norm string) Decision {
	for _, p := range t.Priority {
		if matcher.ContainsPhrase(norm, p.Term) {
			return Decision{Domain: p.Domain, Term: p.Term}
		}
	}
	best, bestScore := "", 0
	for _, d := range t.Domains {
		score := 0
		for _, kw := range d.Keywords {
			score += matcher.CountPhrase(norm, kw)
		}
		if score > bestScore {
			best, bestScore = d.Name, score
		}
	}
	if bestScore == 0 {
		return Decision{Domain: t.Default, Default: true}
	}
	return Decision{Domain: best, Score: bestScore}
}
