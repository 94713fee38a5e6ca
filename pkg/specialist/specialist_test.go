package specialist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/triage/pkg/compose"
	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/matcher"
)

func TestTrigger_Fires(t *testing.T) {
	tests := []struct {
		name     string
		trigger  Trigger
		question string
		want     bool
	}{
		{"Any Hit", Trigger{Phrases: []string{"ai", "ml"}}, "is my ml model a device", true},
		{"Any Miss", Trigger{Phrases: []string{"ai", "ml"}}, "what is html", false},
		{"All Hit", Trigger{Phrases: []string{"hipaa", "de-identification"}, Mode: All}, "hipaa de identification methods", true},
		{"All Partial", Trigger{Phrases: []string{"hipaa", "de-identification"}, Mode: All}, "hipaa basics", false},
		{"Empty Never Fires", Trigger{Mode: All}, "anything", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.trigger.Fires(matcher.Normalize(tt.question)))
		})
	}
}

func TestSelect(t *testing.T) {
	specs := []*Specialist{FDA(), EMA(), MHRA()}

	s, ratio := Select(specs, "What are the latest FDA guidelines for AI in healthcare?")
	require.NotNil(t, s)
	assert.Equal(t, "fda", s.Name)
	assert.Greater(t, ratio, 0.0)

	s, _ = Select(specs, "How does the EU AI Act treat our notified body review?")
	require.NotNil(t, s)
	assert.Equal(t, "ema", s.Name)

	s, _ = Select(specs, "Tell me about the AI Airlock run by the MHRA")
	require.NotNil(t, s)
	assert.Equal(t, "mhra", s.Name)

	s, ratio = Select(specs, "What regulations apply here?")
	assert.Nil(t, s)
	assert.Zero(t, ratio)
}

func TestSelect_TieGoesToFirst(t *testing.T) {
	a := &Specialist{Name: "a", Keywords: []string{"shared"}}
	b := &Specialist{Name: "b", Keywords: []string{"shared"}}
	s, _ := Select([]*Specialist{a, b}, "a shared question")
	require.NotNil(t, s)
	assert.Equal(t, "a", s.Name)
}

func TestFDA_AIQuestion(t *testing.T) {
	resp, ok := FDA().Respond(compose.New(), "What are the latest FDA guidelines for AI in healthcare?", nil)
	require.True(t, ok)

	assert.Equal(t, "FDA AI/ML Action Plan", resp.Subcategory)
	assert.Equal(t, domain.DomainRegulatory, resp.Category)
	assert.Equal(t, "fda", resp.Specialist)
	assert.Equal(t, domain.ResolutionSpecialist, resp.Resolution)
	assert.GreaterOrEqual(t, resp.Confidence, 0.9)
	assert.NotEmpty(t, resp.Sources)
	assert.NotEmpty(t, resp.ActionItems)
	assert.Equal(t, domain.SourceRegulation, resp.Sources[0].Type)
	assert.Equal(t, "https://www.fda.gov/media/145022/download", resp.Sources[0].URL)
}

func TestFDA_BranchOrder(t *testing.T) {
	b, ok := FDA().Branch("Does my AI model need a PCCP?")
	require.True(t, ok)
	assert.Equal(t, "pccp", b.Name)

	b, ok = FDA().Branch("How do I prepare a 510(k)?")
	require.True(t, ok)
	assert.Equal(t, "premarket", b.Name)

	_, ok = FDA().Branch("Who runs the FDA?")
	assert.False(t, ok)
}

func TestDataPrivacy_AllModeBeforeAny(t *testing.T) {
	b, ok := DataPrivacy().Branch("Which HIPAA de-identification method fits model training?")
	require.True(t, ok)
	assert.Equal(t, "hipaa-deidentification", b.Name)

	b, ok = DataPrivacy().Branch("Does HIPAA apply to our vendor?")
	require.True(t, ok)
	assert.Equal(t, "hipaa", b.Name)
}

func TestRespond_BranchLadders(t *testing.T) {
	tests := []struct {
		name        string
		specialist  *Specialist
		question    string
		branch      string
		subcategory string
		confidence  float64
	}{
		{"EMA AI Act", EMA(), "Is our triage model high-risk under the AI Act?", "ai-act", "EU AI Act", 0.9},
		{"EMA Reflection Paper", EMA(), "What does the EMA expect for machine learning in medicine development?", "reflection-paper", "EMA Reflection Paper on AI", 0.9},
		{"EMA MDR", EMA(), "Which notified body reviews our CE mark file?", "mdr", "EU MDR/IVDR", 0.85},
		{"EMA GCP", EMA(), "How does ICH E6 apply to our clinical trial?", "gcp", "ICH E6(R3) Good Clinical Practice", 0.85},
		{"MHRA Airlock", MHRA(), "Can we join the MHRA airlock?", "airlock", "MHRA AI Airlock", 0.9},
		{"MHRA Change Programme", MHRA(), "How will the MHRA regulate AI software?", "change-programme", "MHRA Software and AI as a Medical Device Change Programme", 0.9},
		{"MHRA UKCA", MHRA(), "Do we need UKCA marking for the UK market?", "ukca", "UKCA Marking", 0.8},
		{"Privacy DPIA", DataPrivacy(), "When is a DPIA required?", "dpia", "GDPR DPIA", 0.9},
		{"Privacy GDPR", DataPrivacy(), "Is health data a special category under GDPR?", "gdpr", "GDPR Health Data", 0.9},
		{"Privacy Consent", DataPrivacy(), "How should we record patient consent?", "consent", "Consent Management", 0.8},
		{"Readiness Scoring", Readiness(), "How is the readiness score calculated?", "scoring", "Readiness Scoring", 0.85},
		{"Readiness Sections", Readiness(), "Which sections are weighted highest?", "sections", "Section Weighting", 0.85},
		{"Readiness Gaps", Readiness(), "How do we remediate open gaps?", "gaps", "Gap Remediation", 0.85},
		{"Benchmarking Peers", Benchmarking(), "How do we compare with our peers?", "benchmark", "Industry Benchmarks", 0.85},
		{"Benchmarking Trends", Benchmarking(), "Show the trend over time", "trends", "Compliance Trends", 0.85},
		{"Benchmarking Heatmap", Benchmarking(), "Explain the heat map", "heatmap", "Risk Heatmap", 0.85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := tt.specialist.Branch(tt.question)
			require.True(t, ok)
			assert.Equal(t, tt.branch, b.Name)

			resp, ok := tt.specialist.Respond(compose.New(), tt.question, nil)
			require.True(t, ok)
			assert.Equal(t, tt.subcategory, resp.Subcategory)
			assert.Equal(t, tt.confidence, resp.Confidence)
			assert.Equal(t, tt.specialist.Name, resp.Specialist)
			assert.Equal(t, tt.specialist.Domain, resp.Category)
			assert.Equal(t, domain.ResolutionSpecialist, resp.Resolution)
		})
	}
}

func TestSelect_AssessmentAndAnalytics(t *testing.T) {
	s, _ := Select([]*Specialist{Readiness()}, "What is my readiness score?")
	require.NotNil(t, s)
	assert.Equal(t, "readiness", s.Name)

	s, _ = Select([]*Specialist{Benchmarking()}, "How do I benchmark against peers?")
	require.NotNil(t, s)
	assert.Equal(t, "benchmarking", s.Name)

	s, _ = Select([]*Specialist{Readiness()}, "How am I doing?")
	assert.Nil(t, s)
}

func TestBranches_WellFormed(t *testing.T) {
	for _, s := range []*Specialist{FDA(), EMA(), MHRA(), DataPrivacy(), Readiness(), Benchmarking()} {
		for _, b := range s.Branches {
			assert.NotEmpty(t, b.Trigger.Phrases, "%s/%s", s.Name, b.Name)
			assert.NotEmpty(t, b.Answer, "%s/%s", s.Name, b.Name)
			assert.NotEmpty(t, b.Sources, "%s/%s", s.Name, b.Name)
			assert.True(t, b.Impact.Valid(), "%s/%s", s.Name, b.Name)
			assert.GreaterOrEqual(t, b.Confidence, 0.8, "%s/%s", s.Name, b.Name)
			assert.LessOrEqual(t, b.Confidence, 0.95, "%s/%s", s.Name, b.Name)
		}
	}
}

func TestRespond_Personalized(t *testing.T) {
	sc := &domain.SessionContext{Preferences: domain.Preferences{ExpertiseLevel: "beginner"}}
	resp, ok := FDA().Respond(compose.New(), "What does the FDA expect for AI?", sc)
	require.True(t, ok)
	assert.NotContains(t, resp.Answer, "SaMD")
}
