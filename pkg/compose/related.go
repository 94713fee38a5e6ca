package compose

import "github.com/aretw0/triage/pkg/domain"

// DefaultRelatedQuestions is the fixed per-domain follow-up list.
func DefaultRelatedQuestions() map[string][]string {
	return map[string][]string{
		domain.DomainRegulatory: {
			"What does the FDA expect in a predetermined change control plan?",
			"How does the EU AI Act classify medical AI systems?",
			"Which MHRA programmes apply to AI as a medical device?",
		},
		domain.DomainAssessment: {
			"How is my readiness score calculated?",
			"Which assessment sections carry the most weight?",
			"How do I close the gaps found in my last assessment?",
		},
		domain.DomainAnalytics: {
			"How does my organization compare to the industry benchmark?",
			"Which compliance metrics are trending down?",
			"What does the risk heatmap show?",
		},
		domain.DomainGeneral: {
			"What should a compliance program for AI include?",
			"How do HIPAA and GDPR apply to AI training data?",
			"Where do I start with AI governance?",
		},
	}
}
