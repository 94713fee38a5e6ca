package specialist

import "github.com/aretw0/triage/pkg/domain"

// MHRA answers questions about the UK Medicines and Healthcare products Regulatory Agency.
func MHRA() *Specialist {
	return &Specialist{
		Name:     "mhra",
		Domain:   domain.DomainRegulatory,
		Keywords: []string{"mhra", "uk", "united kingdom", "britain", "ukca", "airlock", "aiamd"},
		Branches: []Branch{
			{
				Name:        "airlock",
				Trigger:     Trigger{Phrases: []string{"airlock", "sandbox"}},
				Subcategory: "MHRA AI Airlock",
				Answer: "The AI Airlock is the MHRA regulatory sandbox for AI as a medical device. Selected products " +
					"are tested with the regulator to surface regulatory challenges, and the findings feed into " +
					"future guidance.",
				Sources: []string{"MHRA AI Airlock"},
				ActionItems: []string{
					"Check the current cohort call and eligibility criteria",
					"Prepare a summary of the regulatory challenge your product raises",
				},
				Impact:     domain.ImpactMedium,
				Confidence: 0.9,
			},
			{
				Name:        "change-programme",
				Trigger:     Trigger{Phrases: []string{"software", "ai", "artificial intelligence", "aiamd", "samd", "machine learning", "change programme"}},
				Subcategory: "MHRA Software and AI as a Medical Device",
				Answer: "The MHRA Software and AI as a Medical Device Change Programme sets out how the UK will " +
					"regulate SaMD and AIaMD. It covers qualification and classification, premarket and " +
					"postmarket requirements, cybersecurity, and AI-specific work on interpretability and " +
					"adaptive models. GMLP principles apply in the UK as well.",
				Sources: []string{"MHRA Software and AI as a Medical Device Change Programme", "FDA Good Machine Learning Practice Guiding Principles"},
				ActionItems: []string{
					"Confirm UK classification of each software function",
					"Track change programme deliverables relevant to your products",
					"Reuse GMLP evidence across FDA and MHRA submissions",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.9,
			},
			{
				Name:        "ukca",
				Trigger:     Trigger{Phrases: []string{"ukca", "uk market", "great britain", "registration", "register"}},
				Subcategory: "UKCA Marking",
				Answer: "Devices placed on the Great Britain market must be registered with the MHRA and carry a UKCA " +
					"or, during the transition period, a CE mark.",
				Sources: []string{"MHRA Software and AI as a Medical Device Change Programme"},
				ActionItems: []string{
					"Register the device with the MHRA",
					"Appoint a UK Responsible Person if you are based outside the UK",
				},
				Impact:     domain.ImpactMedium,
				Confidence: 0.8,
			},
		},
	}
}
