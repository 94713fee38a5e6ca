package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionContext_NilSafe(t *testing.T) {
	var sc *SessionContext
	assert.Equal(t, "", sc.Expertise())
	assert.Equal(t, "", sc.Style())
	assert.Equal(t, "", sc.Area())
	_, ok := sc.LastUserMessage()
	assert.False(t, ok)
}

func TestSessionContext_LastUserMessage(t *testing.T) {
	sc := &SessionContext{History: []ConversationMessage{
		{Role: RoleUser, Content: "What does the FDA expect?"},
		{Role: RoleAssistant, Content: "The FDA expects..."},
		{Role: RoleUser, Content: "   "},
	}}
	msg, ok := sc.LastUserMessage()
	assert.True(t, ok)
	assert.Equal(t, "What does the FDA expect?", msg)
}

func TestKnowledgeEntry_Validate(t *testing.T) {
	valid := KnowledgeEntry{ID: "a", Question: "q", Answer: "a", Category: DomainGeneral, Impact: ImpactHigh}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(e *KnowledgeEntry)
	}{
		{"Missing ID", func(e *KnowledgeEntry) { e.ID = "" }},
		{"Missing Question", func(e *KnowledgeEntry) { e.Question = " " }},
		{"Missing Answer", func(e *KnowledgeEntry) { e.Answer = "" }},
		{"Missing Category", func(e *KnowledgeEntry) { e.Category = "" }},
		{"Unknown Impact", func(e *KnowledgeEntry) { e.Impact = "severe" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			assert.ErrorIs(t, e.Validate(), ErrInvalidEntry)
		})
	}
}

func TestImpactLevel(t *testing.T) {
	assert.True(t, ImpactCritical.Elevated())
	assert.True(t, ImpactHigh.Elevated())
	assert.False(t, ImpactMedium.Elevated())
	assert.False(t, ImpactLevel("").Valid())
}
