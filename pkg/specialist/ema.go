package specialist

import "github.com/aretw0/triage/pkg/domain"

// EMA answers questions about the European Medicines Agency and EU rules.
func EMA() *Specialist {
	return &Specialist{
		Name:   "ema",
		Domain: domain.DomainRegulatory,
		Keywords: []string{
			"ema", "european medicines agency", "eu", "europe", "european", "chmp",
			"ai act", "reflection paper", "mdr", "ivdr", "notified body", "ce mark",
		},
		Branches: []Branch{
			{
				Name:        "ai-act",
				Trigger:     Trigger{Phrases: []string{"ai act", "artificial intelligence act", "high risk", "high-risk"}},
				Subcategory: "EU AI Act",
				Answer: "The EU AI Act treats AI systems that are safety components of medical devices, or are " +
					"themselves devices requiring notified body assessment, as high-risk. High-risk systems need " +
					"a risk management system, data governance, technical documentation, logging, transparency " +
					"to users, human oversight, and accuracy, robustness and cybersecurity. For devices these " +
					"obligations are assessed together with the MDR or IVDR conformity assessment.",
				Sources: []string{"EU AI Act", "EU MDR 2017/745"},
				ActionItems: []string{
					"Determine whether each AI system is high-risk under the AI Act",
					"Extend technical documentation with AI Act requirements",
					"Define human oversight measures for deployed models",
				},
				Impact:     domain.ImpactCritical,
				Confidence: 0.9,
			},
			{
				Name:        "reflection-paper",
				Trigger:     Trigger{Phrases: []string{"reflection paper", "ai", "artificial intelligence", "machine learning", "ml"}},
				Subcategory: "EMA Reflection Paper on AI",
				Answer: "The EMA reflection paper covers AI use across the medicinal product lifecycle, from drug " +
					"discovery and clinical trials to manufacturing and pharmacovigilance. It asks sponsors to " +
					"take a risk-based approach, engage early with regulators when AI affects the benefit-risk " +
					"assessment, and keep models used in pivotal trials locked and documented.",
				Sources: []string{"EMA Reflection Paper on AI"},
				ActionItems: []string{
					"List where AI is used across your product lifecycle",
					"Rate each use by regulatory impact and patient risk",
					"Plan scientific advice for high impact uses",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.9,
			},
			{
				Name:        "mdr",
				Trigger:     Trigger{Phrases: []string{"mdr", "ivdr", "notified body", "ce mark", "ce marking", "medical device regulation"}},
				Subcategory: "EU MDR/IVDR",
				Answer: "Under the MDR most standalone software is class IIa or higher through Rule 11, which means " +
					"a notified body must assess the quality management system and technical documentation " +
					"before CE marking.",
				Sources: []string{"EU MDR 2017/745"},
				ActionItems: []string{
					"Classify the software under Rule 11",
					"Select a notified body with software scope",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.85,
			},
			{
				Name:        "gcp",
				Trigger:     Trigger{Phrases: []string{"clinical trial", "clinical trials", "gcp", "good clinical practice", "ich e6"}},
				Subcategory: "ICH E6(R3) Good Clinical Practice",
				Answer: "ICH E6(R3) modernizes good clinical practice with risk-proportionate quality management and " +
					"explicit expectations for computerized systems, including validation, audit trail and data " +
					"integrity for any system, AI included, that produces trial data.",
				Sources: []string{"ICH E6(R3) Good Clinical Practice"},
				ActionItems: []string{
					"Validate computerized systems used in trials",
					"Document critical to quality factors for each protocol",
				},
				Impact:     domain.ImpactMedium,
				Confidence: 0.85,
			},
		},
	}
}
