package specialist

import "github.com/aretw0/triage/pkg/domain"

// FDA answers questions about US Food and Drug Administration expectations.
func FDA() *Specialist {
	return &Specialist{
		Name:   "fda",
		Domain: domain.DomainRegulatory,
		Keywords: []string{
			"fda", "food and drug administration", "cdrh", "510k", "de novo", "pma",
			"premarket", "pccp", "gmlp", "cds", "21 cfr", "samd",
		},
		Branches: []Branch{
			{
				Name:        "pccp",
				Trigger:     Trigger{Phrases: []string{"pccp", "predetermined change control", "change control plan"}},
				Subcategory: "FDA Predetermined Change Control Plan",
				Answer: "A PCCP lets you describe planned modifications to an AI-enabled device in the marketing " +
					"submission, so that changes made within the authorized plan do not need a new submission. " +
					"It has three parts: a description of modifications, a modification protocol covering data " +
					"management, retraining, performance evaluation and update procedures, and an impact assessment.\n\n" +
					"The FDA reviews the plan together with the device; changes outside its boundaries still " +
					"require a new 510(k), De Novo or PMA supplement.",
				Sources: []string{"FDA Predetermined Change Control Plan Guidance", "FDA AI/ML Action Plan"},
				ActionItems: []string{
					"List the model changes you expect in the next release cycles",
					"Write a modification protocol with acceptance criteria for each change",
					"Document the impact assessment for every planned modification",
					"Align the plan with your QMS change control procedure",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.95,
			},
			{
				Name:        "gmlp",
				Trigger:     Trigger{Phrases: []string{"gmlp", "good machine learning practice"}},
				Subcategory: "FDA Good Machine Learning Practice",
				Answer: "GMLP is a set of ten guiding principles published by the FDA with Health Canada and the MHRA. " +
					"They cover multidisciplinary expertise, good software engineering and security practice, " +
					"representative clinical study participants and data sets, independence of training and test " +
					"data, reference standards, model design tailored to the data, human-AI team performance, " +
					"clinically relevant testing, clear user information and monitoring of deployed models.",
				Sources: []string{"FDA Good Machine Learning Practice Guiding Principles"},
				ActionItems: []string{
					"Map each of the ten principles to an owner and an existing procedure",
					"Check that training and test data sets are independent",
					"Plan post-deployment performance monitoring",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.95,
			},
			{
				Name:        "cds",
				Trigger:     Trigger{Phrases: []string{"clinical decision support", "cds"}},
				Subcategory: "FDA Clinical Decision Support",
				Answer: "Clinical decision support software is excluded from the device definition only when it meets " +
					"all four criteria of section 520(o)(1)(E): it does not analyze medical images or signals, it " +
					"displays or analyzes medical information, it supports rather than replaces the recommendation " +
					"of a health care professional, and it lets that professional independently review the basis " +
					"of the recommendation. Most AI models that produce patient-specific outputs from signals or " +
					"images remain devices.",
				Sources: []string{"FDA Clinical Decision Support Software Guidance"},
				ActionItems: []string{
					"Assess the software function against the four non-device criteria",
					"Document how users can review the basis of each recommendation",
				},
				Impact:     domain.ImpactMedium,
				Confidence: 0.9,
			},
			{
				Name:        "cybersecurity",
				Trigger:     Trigger{Phrases: []string{"cybersecurity", "cyber security", "sbom", "cyber"}},
				Subcategory: "FDA Cybersecurity",
				Answer: "Cyber devices submitted to the FDA must include a plan to monitor and address postmarket " +
					"vulnerabilities, processes that provide reasonable assurance of cybersecurity, and a software " +
					"bill of materials. The premarket guidance expects a secure product development framework, " +
					"threat modeling, security risk management and security testing evidence.",
				Sources: []string{"FDA Cybersecurity in Medical Devices Guidance"},
				ActionItems: []string{
					"Produce an SBOM for every release",
					"Maintain a threat model for the device and its AI components",
					"Define a coordinated vulnerability disclosure process",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.9,
			},
			{
				Name:        "part11",
				Trigger:     Trigger{Phrases: []string{"part 11", "electronic records", "electronic signatures", "electronic signature"}},
				Subcategory: "21 CFR Part 11",
				Answer: "Part 11 applies when records required by FDA regulations are kept electronically. Systems must " +
					"be validated, keep a secure, computer-generated audit trail, limit access to authorized " +
					"users and bind electronic signatures to their records. AI pipelines that generate or modify " +
					"regulated records fall under the same controls.",
				Sources: []string{"21 CFR Part 11"},
				ActionItems: []string{
					"Inventory the systems that hold regulated electronic records",
					"Confirm every such system keeps an audit trail",
					"Validate systems according to their risk",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.9,
			},
			{
				Name:        "ai-ml",
				Trigger:     Trigger{Phrases: []string{"ai", "artificial intelligence", "machine learning", "ml", "algorithm", "algorithms"}},
				Subcategory: "FDA AI/ML Action Plan",
				Answer: "The FDA regulates AI/ML-based SaMD under its existing device framework and has set out its " +
					"approach in the AI/ML Action Plan. The plan commits to a tailored regulatory framework built " +
					"on predetermined change control plans, good machine learning practice, a patient-centered " +
					"approach including transparency to users, methods to evaluate and reduce algorithmic bias, " +
					"and real-world performance monitoring.\n\n" +
					"Recent guidance builds on this plan, most notably the final PCCP guidance and the GMLP " +
					"guiding principles. Expect premarket reviewers to ask for model description, data " +
					"provenance, performance across subgroups and a plan for managing model updates.",
				Sources: []string{
					"FDA AI/ML Action Plan",
					"FDA Good Machine Learning Practice Guiding Principles",
					"FDA Predetermined Change Control Plan Guidance",
				},
				ActionItems: []string{
					"Classify each AI function and confirm whether it is a device",
					"Decide whether a PCCP is needed for planned model updates",
					"Document training data provenance and subgroup performance",
					"Set up real-world performance monitoring",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.95,
			},
			{
				Name:        "premarket",
				Trigger:     Trigger{Phrases: []string{"510k", "510 k", "premarket notification", "de novo", "pma", "premarket", "clearance"}},
				Subcategory: "FDA Premarket Pathways",
				Answer: "Most software devices reach the US market through one of three pathways. A 510(k) shows " +
					"substantial equivalence to a predicate device. De Novo classifies a novel low to moderate " +
					"risk device with no predicate. PMA is required for class III devices and needs valid " +
					"scientific evidence of safety and effectiveness.",
				Sources: []string{"21 CFR 807"},
				ActionItems: []string{
					"Identify candidate predicate devices",
					"Request a Q-Submission meeting if the pathway is unclear",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.85,
			},
		},
	}
}
