package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/triage/pkg/domain"
)

func TestScore(t *testing.T) {
	full := domain.AgentResponse{
		Category:    domain.DomainRegulatory,
		Impact:      domain.ImpactCritical,
		Sources:     []domain.Source{{Title: "EU AI Act"}},
		ActionItems: []string{"Classify the system"},
	}
	tests := []struct {
		name string
		resp domain.AgentResponse
		want float64
	}{
		{"Bare General", domain.AgentResponse{Category: domain.CategoryGeneral}, 0.5},
		{"Domain Category", domain.AgentResponse{Category: domain.DomainAnalytics}, 0.7},
		{"General With Everything", domain.AgentResponse{
			Category: domain.CategoryGeneral, Impact: domain.ImpactHigh,
			Sources: full.Sources, ActionItems: full.ActionItems,
		}, 0.8},
		{"Clamped Full", full, 1.0},
		{"Medium Impact No Bonus", domain.AgentResponse{Category: domain.CategoryGeneral, Impact: domain.ImpactMedium}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.resp))
		})
	}
}

func TestFinalize(t *testing.T) {
	curated := domain.AgentResponse{Category: domain.CategoryGeneral, Confidence: 0.9, Resolution: domain.ResolutionCurated}
	assert.Equal(t, 0.9, Finalize(curated))

	generic := domain.AgentResponse{Category: domain.DomainRegulatory, Confidence: 0.3, Resolution: domain.ResolutionGeneric}
	assert.Equal(t, 0.3, Finalize(generic))

	specialist := domain.AgentResponse{
		Category: domain.DomainRegulatory, Impact: domain.ImpactHigh,
		Sources: []domain.Source{{Title: "x"}}, ActionItems: []string{"y"},
		Confidence: 0.95, Resolution: domain.ResolutionSpecialist,
	}
	assert.Equal(t, 0.95, Finalize(specialist))

	weak := domain.AgentResponse{Category: domain.CategoryGeneral, Confidence: 0.9, Resolution: domain.ResolutionSpecialist}
	assert.Equal(t, 0.5, Finalize(weak))

	assert.Equal(t, 0.7, Finalize(domain.AgentResponse{Category: domain.DomainAnalytics}))
}
