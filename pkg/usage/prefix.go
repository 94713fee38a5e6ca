package usage

import (
	"regexp"
	"strings"
)

// PrefixRunes is the length of the question prefix kept in usage records.
const PrefixRunes = 60

const maskToken = "***"

// DefaultMaskPatterns match e-mail addresses and digit runs long enough to be
// identifiers (phone, record or account numbers).
var DefaultMaskPatterns = []string{
	`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`,
	`\d[\d\-]{4,}\d`,
}

var defaultMasks = compile(DefaultMaskPatterns)

func compile(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// Mask replaces every match of the default patterns with "***".
func Mask(text string) string {
	return maskWith(text, defaultMasks)
}

func maskWith(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		text = p.ReplaceAllString(text, maskToken)
	}
	return text
}

// Prefix returns the masked first PrefixRunes runes of a question. Masking runs
// on the full question first so that a value cut by the limit is still hidden.
func Prefix(question string) string {
	masked := Mask(strings.TrimSpace(question))
	runes := []rune(masked)
	if len(runes) > PrefixRunes {
		runes = runes[:PrefixRunes]
	}
	return string(runes)
}
