package matcher

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords are dropped from keyword extraction.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {},
	"can": {}, "do": {}, "does": {}, "for": {}, "from": {}, "how": {}, "i": {}, "in": {},
	"is": {}, "it": {}, "me": {}, "my": {}, "of": {}, "on": {}, "or": {}, "our": {},
	"should": {}, "that": {}, "the": {}, "their": {}, "there": {}, "this": {}, "to": {},
	"we": {}, "what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "why": {},
	"will": {}, "with": {}, "you": {}, "your": {}, "about": {}, "any": {}, "latest": {},
	"tell": {}, "please": {}, "need": {}, "know": {}, "get": {}, "s": {},
}

// Normalize lowercases text, turns every rune that is not a letter or digit into a
// space and collapses runs of whitespace.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	space := true
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

// Tokens splits normalized text into words.
func Tokens(text string) []string {
	return strings.Fields(Normalize(text))
}

// Keywords extracts the distinct, non-stopword tokens of text in first-seen order.
// Adjacent single-letter or digit fragments are also joined ("510(k)" yields "510k")
// so that citation style identifiers survive punctuation.
func Keywords(text string) []string {
	toks := Tokens(text)
	seen := make(map[string]struct{}, len(toks))
	out := make([]string, 0, len(toks))
	add := func(tok string) {
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	for i, tok := range toks {
		if i > 0 && len(tok) == 1 && isNumber(toks[i-1]) {
			add(toks[i-1] + tok)
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if len([]rune(tok)) < 2 {
			continue
		}
		add(tok)
	}
	return out
}

// KeywordSet returns Keywords(text) as a set.
func KeywordSet(text string) map[string]struct{} {
	kws := Keywords(text)
	set := make(map[string]struct{}, len(kws))
	for _, k := range kws {
		set[k] = struct{}{}
	}
	return set
}

// EntryTokens returns the sorted distinct keyword tokens of a text bundle. Stores use it to
// build their token index so that it agrees with Keywords on the question side.
func EntryTokens(texts ...string) []string {
	set := make(map[string]struct{})
	for _, t := range texts {
		for _, k := range Keywords(t) {
			set[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ContainsPhrase reports whether the normalized phrase occurs in normalized text on
// word boundaries.
func ContainsPhrase(normText, phrase string) bool {
	return CountPhrase(normText, phrase) > 0
}

// CountPhrase counts word-boundary occurrences of phrase in normalized text.
func CountPhrase(normText, phrase string) int {
	p := Normalize(phrase)
	if p == "" || normText == "" {
		return 0
	}
	hay := " " + normText + " "
	needle := " " + p + " "
	n := 0
	for {
		i := strings.Index(hay, needle)
		if i < 0 {
			return n
		}
		n++
		// keep the trailing space so adjacent repeats still match
		hay = hay[i+len(needle)-1:]
	}
}

func isNumber(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
