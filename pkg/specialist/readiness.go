package specialist

import "github.com/aretw0/triage/pkg/domain"

// Readiness answers questions about how readiness assessments are scored and acted on.
func Readiness() *Specialist {
	return &Specialist{
		Name:   "readiness",
		Domain: domain.DomainAssessment,
		Keywords: []string{
			"readiness", "assessment", "score", "scoring", "maturity", "gap", "gaps",
			"section", "sections", "questionnaire", "evidence", "remediation",
		},
		Branches: []Branch{
			{
				Name:        "scoring",
				Trigger:     Trigger{Phrases: []string{"score", "scores", "scoring", "scored", "calculate", "calculated", "rating"}},
				Subcategory: "Readiness Scoring",
				Answer: "Each answered control is scored from 0 to 4 against its maturity criteria. Section scores are " +
					"the mean of their controls, and the overall readiness score is the weighted mean of the section " +
					"scores, expressed as a percentage. Unanswered controls count as zero until they are answered.",
				Sources: []string{"Readiness Assessment Methodology", "NIST AI Risk Management Framework"},
				ActionItems: []string{
					"Answer every control so that blanks do not pull the score down",
					"Review the lowest scoring section first",
				},
				Impact:     domain.ImpactMedium,
				Confidence: 0.85,
			},
			{
				Name:        "sections",
				Trigger:     Trigger{Phrases: []string{"section", "sections", "weight", "weights", "weighting", "weighted"}},
				Subcategory: "Section Weighting",
				Answer: "Governance and risk management carry the most weight, followed by data management and model " +
					"validation. Documentation and training carry the least. Weights reflect how often each area is " +
					"cited in regulatory findings.",
				Sources: []string{"Readiness Assessment Methodology"},
				ActionItems: []string{
					"Prioritize governance and risk management controls",
					"Check whether a custom weighting profile applies to your organization",
				},
				Impact:     domain.ImpactMedium,
				Confidence: 0.85,
			},
			{
				Name:        "gaps",
				Trigger:     Trigger{Phrases: []string{"gap", "gaps", "remediation", "remediate", "close", "fix", "improve"}},
				Subcategory: "Gap Remediation",
				Answer: "Every control scored below 2 is reported as a gap. Plan remediation by impact: close critical " +
					"and high impact gaps first, assign an owner and a due date to each, and attach evidence when the " +
					"control is fixed so the next assessment can verify it.",
				Sources: []string{"Readiness Assessment Methodology", "NIST AI Risk Management Framework"},
				ActionItems: []string{
					"Export the gap list and assign an owner to each item",
					"Schedule a follow-up assessment once critical gaps are closed",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.85,
			},
			{
				Name:        "evidence",
				Trigger:     Trigger{Phrases: []string{"evidence", "artifact", "artifacts", "proof", "upload"}},
				Subcategory: "Assessment Evidence",
				Answer: "A control only scores above 2 when evidence supports it: a policy, a procedure, a record or a " +
					"test report that shows the control operating. Self-declared answers without evidence are capped.",
				Sources: []string{"Readiness Assessment Methodology"},
				ActionItems: []string{
					"Link an approved document to each control you score 3 or higher",
				},
				Impact:     domain.ImpactMedium,
				Confidence: 0.8,
			},
			{
				Name:        "maturity",
				Trigger:     Trigger{Phrases: []string{"maturity", "level", "levels", "stage"}},
				Subcategory: "Maturity Levels",
				Answer: "Maturity runs from 0 (not started) through 1 (ad hoc), 2 (defined), 3 (implemented) to 4 " +
					"(measured and improved). Most organizations preparing a first AI submission should target 3 in " +
					"governance, data management and validation.",
				Sources: []string{"Readiness Assessment Methodology"},
				ActionItems: []string{
					"Set a target maturity level per section before the next assessment",
				},
				Impact:     domain.ImpactLow,
				Confidence: 0.8,
			},
		},
	}
}
