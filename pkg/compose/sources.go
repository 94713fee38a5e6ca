package compose

import (
	"strings"

	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/matcher"
)

// classRule maps a label to a source type. Words match on word boundaries so that
// short regulator abbreviations do not fire inside other words; substrings match anywhere.
type classRule struct {
	typ        domain.SourceType
	words      []string
	substrings []string
}

var classRules = []classRule{
	{
		typ: domain.SourceRegulation,
		words: []string{
			"fda", "ema", "mhra", "ich", "pmda", "health canada", "tga", "cfr",
			"eu ai act", "mdr", "ivdr", "hipaa", "gdpr",
		},
		substrings: []string{"regulation"},
	},
	{typ: domain.SourceGuidance, substrings: []string{"guidance", "guideline", "principles", "good practice", "framework"}},
	{typ: domain.SourceAnalytics, substrings: []string{"analytics", "benchmark", "metric", "dashboard", "trend"}},
	{typ: domain.SourceAssessment, substrings: []string{"assessment", "maturity", "questionnaire", "readiness"}},
}

// ClassifySource returns the source type of a citation label.
func ClassifySource(label string) domain.SourceType {
	norm := matcher.Normalize(label)
	lower := strings.ToLower(label)
	for _, rule := range classRules {
		for _, w := range rule.words {
			if matcher.ContainsPhrase(norm, w) {
				return rule.typ
			}
		}
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				return rule.typ
			}
		}
	}
	return domain.SourceCompliance
}

// citation is a known reference with a canonical URL and a short description.
type citation struct {
	url     string
	summary string
}

var citations = map[string]citation{
	"FDA AI/ML Action Plan": {
		url:     "https://www.fda.gov/media/145022/download",
		summary: "FDA action plan for AI/ML-based software as a medical device.",
	},
	"FDA Good Machine Learning Practice Guiding Principles": {
		url:     "https://www.fda.gov/medical-devices/software-medical-device-samd/good-machine-learning-practice-medical-device-development-guiding-principles",
		summary: "Ten guiding principles for ML-enabled medical device development.",
	},
	"FDA Predetermined Change Control Plan Guidance": {
		url:     "https://www.fda.gov/regulatory-information/search-fda-guidance-documents/marketing-submission-recommendations-predetermined-change-control-plan-artificial-intelligence",
		summary: "Recommendations for predetermined change control plans for AI-enabled devices.",
	},
	"FDA Clinical Decision Support Software Guidance": {
		url:     "https://www.fda.gov/regulatory-information/search-fda-guidance-documents/clinical-decision-support-software",
		summary: "Criteria separating device and non-device clinical decision support software.",
	},
	"FDA Cybersecurity in Medical Devices Guidance": {
		url:     "https://www.fda.gov/regulatory-information/search-fda-guidance-documents/cybersecurity-medical-devices-quality-system-considerations-and-content-premarket-submissions",
		summary: "Premarket cybersecurity expectations for medical devices.",
	},
	"21 CFR Part 11": {
		url:     "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-A/part-11",
		summary: "Electronic records and electronic signatures.",
	},
	"21 CFR 807": {
		url:     "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-H/part-807",
		summary: "Establishment registration and premarket notification.",
	},
	"EMA Reflection Paper on AI": {
		url:     "https://www.ema.europa.eu/en/use-artificial-intelligence-ai-medicinal-product-lifecycle",
		summary: "EMA reflection paper on AI across the medicinal product lifecycle.",
	},
	"EU AI Act": {
		url:     "https://eur-lex.europa.eu/eli/reg/2024/1689/oj",
		summary: "Regulation (EU) 2024/1689 laying down harmonised rules on artificial intelligence.",
	},
	"EU MDR 2017/745": {
		url:     "https://eur-lex.europa.eu/eli/reg/2017/745/oj",
		summary: "Medical Device Regulation (EU) 2017/745.",
	},
	"MHRA Software and AI as a Medical Device Change Programme": {
		url:     "https://www.gov.uk/government/publications/software-and-ai-as-a-medical-device-change-programme",
		summary: "MHRA roadmap for software and AI as a medical device.",
	},
	"MHRA AI Airlock": {
		url:     "https://www.gov.uk/government/collections/ai-airlock-the-regulatory-sandbox-for-aiamd",
		summary: "Regulatory sandbox for AI as a medical device.",
	},
	"ICH E6(R3) Good Clinical Practice": {
		url:     "https://database.ich.org/sites/default/files/ICH_E6%28R3%29_Step4_FinalGuideline_2025_0106.pdf",
		summary: "Harmonised good clinical practice guideline.",
	},
	"HIPAA Privacy Rule": {
		url:     "https://www.hhs.gov/hipaa/for-professionals/privacy/index.html",
		summary: "Standards for the protection of individually identifiable health information.",
	},
	"GDPR Article 9": {
		url:     "https://gdpr-info.eu/art-9-gdpr/",
		summary: "Processing of special categories of personal data, including health data.",
	},
	"NIST AI Risk Management Framework": {
		url:     "https://www.nist.gov/itl/ai-risk-management-framework",
		summary: "Voluntary framework for managing AI risks.",
	},
	"ISO/IEC 42001": {
		url:     "https://www.iso.org/standard/81230.html",
		summary: "Management system standard for organizations that develop or use AI.",
	},
}

// SourceFor builds a Source from a citation label. Unknown labels get a
// domain-relative placeholder URL.
func SourceFor(domainName, label string) domain.Source {
	src := domain.Source{
		Type:    ClassifySource(label),
		Title:   label,
		Content: label,
	}
	if c, ok := citations[label]; ok {
		src.URL = c.url
		src.Content = c.summary
		return src
	}
	src.URL = PlaceholderURL(domainName, label)
	return src
}

// PlaceholderURL returns the domain-relative URL used for unknown citations.
func PlaceholderURL(domainName, label string) string {
	return "/knowledge/" + domainName + "/" + strings.ReplaceAll(matcher.Normalize(label), " ", "-")
}

// Sources converts citation labels in order, dropping blanks.
func Sources(domainName string, labels []string) []domain.Source {
	out := make([]domain.Source, 0, len(labels))
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, SourceFor(domainName, l))
	}
	return out
}
