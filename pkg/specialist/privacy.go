package specialist

import "github.com/aretw0/triage/pkg/domain"

// DataPrivacy answers HIPAA and GDPR questions for the general domain.
func DataPrivacy() *Specialist {
	return &Specialist{
		Name:   "data-privacy",
		Domain: domain.DomainGeneral,
		Keywords: []string{
			"hipaa", "gdpr", "privacy", "phi", "personal data", "de identification",
			"consent", "data protection", "dpia", "anonymization", "pseudonymization",
		},
		Branches: []Branch{
			{
				Name:        "hipaa-deidentification",
				Trigger:     Trigger{Phrases: []string{"hipaa", "de identification"}, Mode: All},
				Subcategory: "HIPAA De-identification",
				Answer: "HIPAA offers two de-identification methods. Safe Harbor removes the eighteen listed " +
					"identifiers and requires no actual knowledge that the rest could identify a person. Expert " +
					"Determination relies on a qualified expert who documents that the re-identification risk is " +
					"very small. De-identified data is no longer PHI and can be used to train models.",
				Sources: []string{"HIPAA Privacy Rule"},
				ActionItems: []string{
					"Choose Safe Harbor or Expert Determination for each data set",
					"Keep the de-identification report with the data set",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.95,
			},
			{
				Name:        "hipaa",
				Trigger:     Trigger{Phrases: []string{"hipaa", "phi", "protected health information"}},
				Subcategory: "HIPAA Privacy Rule",
				Answer: "The HIPAA Privacy Rule limits how covered entities and their business associates use and " +
					"disclose PHI. Using PHI to build AI models needs a permitted purpose, patient authorization, " +
					"a waiver or de-identified data, and vendors that touch PHI need a business associate agreement.",
				Sources: []string{"HIPAA Privacy Rule"},
				ActionItems: []string{
					"Map the PHI that flows into AI systems",
					"Sign business associate agreements with AI vendors",
					"Apply the minimum necessary standard to training data",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.9,
			},
			{
				Name:        "dpia",
				Trigger:     Trigger{Phrases: []string{"dpia", "data protection impact assessment", "impact assessment"}},
				Subcategory: "GDPR DPIA",
				Answer: "A DPIA is required before processing that is likely to result in a high risk to individuals, " +
					"which covers large scale processing of health data and most uses of new technologies such as " +
					"AI. It describes the processing, assesses necessity and proportionality, and records the " +
					"measures that address the risks.",
				Sources: []string{"GDPR Article 9"},
				ActionItems: []string{
					"Run a DPIA before training on health data",
					"Consult the supervisory authority if high risk remains",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.9,
			},
			{
				Name:        "gdpr",
				Trigger:     Trigger{Phrases: []string{"gdpr", "personal data", "data subject", "special category", "data protection"}},
				Subcategory: "GDPR Health Data",
				Answer: "Health data is a special category under GDPR Article 9. Processing needs both a lawful basis " +
					"under Article 6 and an Article 9 condition such as explicit consent or scientific research " +
					"with safeguards. Data subjects keep their rights, including information about automated " +
					"decision-making.",
				Sources: []string{"GDPR Article 9"},
				ActionItems: []string{
					"Record the Article 6 and Article 9 basis for each processing purpose",
					"Update privacy notices to describe AI processing",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.9,
			},
			{
				Name:        "consent",
				Trigger:     Trigger{Phrases: []string{"consent"}},
				Subcategory: "Consent Management",
				Answer: "Consent for AI use of health data must be specific, informed and revocable. Record what each " +
					"person agreed to and make sure withdrawal reaches training pipelines.",
				Sources:     []string{"GDPR Article 9", "HIPAA Privacy Rule"},
				ActionItems: []string{"Version consent forms and store the version with each record"},
				Impact:      domain.ImpactMedium,
				Confidence:  0.8,
			},
		},
	}
}
