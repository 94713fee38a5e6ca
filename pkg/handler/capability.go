package handler

import (
	"fmt"

	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/specialist"
)

// RegulatoryCapability describes the regulatory handler.
func RegulatoryCapability() domain.DomainCapability {
	return domain.DomainCapability{
		Domain:         domain.DomainRegulatory,
		Subdomains:     []string{"fda", "ema", "mhra", "eu ai act", "premarket pathways", "clinical trials"},
		Keywords:       []string{"regulation", "guidance", "submission", "clearance", "approval", "fda", "ema", "mhra"},
		ExpertiseAreas: []string{"AI/ML medical devices", "change control plans", "good machine learning practice"},
	}
}

// AssessmentCapability describes the assessment handler.
func AssessmentCapability() domain.DomainCapability {
	return domain.DomainCapability{
		Domain:         domain.DomainAssessment,
		Subdomains:     []string{"readiness scoring", "section analysis", "gap remediation"},
		Keywords:       []string{"assessment", "readiness", "maturity", "score", "gap", "questionnaire"},
		ExpertiseAreas: []string{"compliance readiness", "maturity models"},
	}
}

// AnalyticsCapability describes the analytics handler.
func AnalyticsCapability() domain.DomainCapability {
	return domain.DomainCapability{
		Domain:         domain.DomainAnalytics,
		Subdomains:     []string{"benchmarks", "trends", "risk heatmaps"},
		Keywords:       []string{"analytics", "benchmark", "trend", "metric", "dashboard", "report"},
		ExpertiseAreas: []string{"compliance metrics", "industry comparison"},
	}
}

// GeneralCapability describes the general handler.
func GeneralCapability() domain.DomainCapability {
	return domain.DomainCapability{
		Domain:         domain.DomainGeneral,
		Subdomains:     []string{"ai governance", "data privacy", "documentation"},
		Keywords:       []string{"compliance", "policy", "governance", "privacy", "hipaa", "gdpr"},
		ExpertiseAreas: []string{"AI governance programs", "health data privacy"},
	}
}

// NewRegulatory creates the regulatory handler with the FDA, EMA and MHRA specialists.
func NewRegulatory(opts ...Option) *Handler {
	base := []Option{
		WithSpecialists(specialist.FDA(), specialist.EMA(), specialist.MHRA()),
		WithClarifier(func(*domain.SessionContext) string {
			return "I can help with regulatory expectations for AI-enabled products from the FDA, the EMA and the MHRA. " +
				"Which regulator, product type or submission stage is your question about?"
		}),
	}
	return New(RegulatoryCapability(), append(base, opts...)...)
}

// NewAssessment creates the assessment handler with the readiness specialist. Its
// fallback points at the active assessment when the session has one.
func NewAssessment(opts ...Option) *Handler {
	base := []Option{
		WithSpecialists(specialist.Readiness()),
		WithClarifier(func(sc *domain.SessionContext) string {
			if id := sc.AssessmentID(); id != "" {
				return fmt.Sprintf("Your active assessment is %s. You can ask about its readiness score, "+
					"its weakest sections or the gaps it found.", id)
			}
			return "I can help with readiness assessments: how scores are calculated, how sections are weighted " +
				"and how to close gaps. Which assessment or section is your question about?"
		}),
	}
	return New(AssessmentCapability(), append(base, opts...)...)
}

// NewAnalytics creates the analytics handler with the benchmarking specialist.
func NewAnalytics(opts ...Option) *Handler {
	base := []Option{
		WithSpecialists(specialist.Benchmarking()),
		WithClarifier(func(*domain.SessionContext) string {
			return "I can help you read compliance analytics, benchmarks and trends. " +
				"Which metric or time period are you interested in?"
		}),
	}
	return New(AnalyticsCapability(), append(base, opts...)...)
}

// NewGeneral creates the general handler with the data privacy specialist. It is
// the default domain of the router.
func NewGeneral(opts ...Option) *Handler {
	base := []Option{
		WithSpecialists(specialist.DataPrivacy()),
		WithClarifier(func(*domain.SessionContext) string {
			return "I can help with AI compliance in life sciences, including governance, data privacy and " +
				"regulatory expectations. Could you add more detail about what you need?"
		}),
	}
	return New(GeneralCapability(), append(base, opts...)...)
}
