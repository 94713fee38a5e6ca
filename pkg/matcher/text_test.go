package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Lowercase", "FDA Guidance", "fda guidance"},
		{"Punctuation", "What's AI/ML?", "what s ai ml"},
		{"Whitespace", "  a \t\n b  ", "a b"},
		{"Empty", "", ""},
		{"Only Punctuation", "?!...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestKeywords(t *testing.T) {
	assert.Equal(t,
		[]string{"fda", "guidelines", "ai", "healthcare"},
		Keywords("What are the latest FDA guidelines for AI in healthcare?"))

	assert.Equal(t, []string{"510", "510k", "submission"}, Keywords("What is a 510(k) submission?"))
	assert.Empty(t, Keywords("what is it?"))
	assert.Equal(t, []string{"audit"}, Keywords("audit AUDIT audit"), "keywords are distinct")
}

func TestCountPhrase(t *testing.T) {
	norm := Normalize("FDA fda guidance, the fda-approved path")
	assert.Equal(t, 3, CountPhrase(norm, "fda"))
	assert.Equal(t, 1, CountPhrase(norm, "fda guidance"))
	assert.Equal(t, 0, CountPhrase(Normalize("maintain records"), "ai"), "no partial word matches")
	assert.Equal(t, 0, CountPhrase("", "fda"))
	assert.Equal(t, 0, CountPhrase(norm, ""))
	assert.True(t, ContainsPhrase(norm, "approved path"))
}

func TestEntryTokens_SortedAndDistinct(t *testing.T) {
	got := EntryTokens("Risk assessment", "assessment risk", "CAPA")
	assert.Equal(t, []string{"assessment", "capa", "risk"}, got)
}
