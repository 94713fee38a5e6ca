package matcher

import (
	"strings"

	"github.com/aretw0/triage/pkg/domain"
)

// Score weights.
const (
	ScoreExact       = 100
	ScoreVariation   = 80
	ScoreContainment = 70
	ScoreKeyword     = 10
)

// Query is a pre-processed question, computed once and reused for every candidate.
type Query struct {
	Raw        string
	Normalized string
	Keywords   map[string]struct{}
}

// NewQuery prepares a question for scoring.
func NewQuery(question string) Query {
	return Query{
		Raw:        question,
		Normalized: Normalize(question),
		Keywords:   KeywordSet(question),
	}
}

// Empty reports whether the question has no content left after normalization.
func (q Query) Empty() bool {
	return q.Normalized == ""
}

// Score returns the additive match score of entry for q.
func Score(q Query, entry domain.KnowledgeEntry) int {
	if q.Empty() {
		return 0
	}
	score := 0
	canonical := Normalize(entry.Question)
	if canonical == q.Normalized {
		score += ScoreExact
	}

	for _, v := range entry.Variations {
		nv := Normalize(v)
		if nv == "" {
			continue
		}
		if nv == q.Normalized || strings.Contains(q.Normalized, nv) || strings.Contains(nv, q.Normalized) {
			score += ScoreVariation
			break
		}
	}

	if canonical != "" && (strings.Contains(canonical, q.Normalized) || strings.Contains(q.Normalized, canonical)) {
		score += ScoreContainment
	}

	for _, kw := range entry.Keywords {
		nk := Normalize(kw)
		if nk == "" {
			continue
		}
		if strings.Contains(nk, " ") {
			if ContainsPhrase(q.Normalized, nk) {
				score += ScoreKeyword
			}
			continue
		}
		if _, ok := q.Keywords[nk]; ok {
			score += ScoreKeyword
		}
	}
	return score
}

// Candidates pre-filters entries to those of the category that share at least one
// keyword token with the question. It keeps scoring bounded regardless of how many
// entries a store returns.
func Candidates(q Query, entries []domain.KnowledgeEntry, category string) []domain.KnowledgeEntry {
	if q.Empty() || len(q.Keywords) == 0 {
		return nil
	}
	out := make([]domain.KnowledgeEntry, 0, len(entries))
	for _, e := range entries {
		if category != "" && e.Category != category {
			continue
		}
		for _, tok := range EntryTokens(e.SearchText()) {
			if _, ok := q.Keywords[tok]; ok {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Match returns the best scoring candidate of the given category, or false when the
// pool is empty or nothing scores above zero.
func Match(question string, entries []domain.KnowledgeEntry, category string) (domain.KnowledgeEntry, bool) {
	q := NewQuery(question)
	best, bestScore := domain.KnowledgeEntry{}, 0
	for _, e := range Candidates(q, entries, category) {
		if s := Score(q, e); s > bestScore {
			best, bestScore = e, s
		}
	}
	return best, bestScore > 0
}
