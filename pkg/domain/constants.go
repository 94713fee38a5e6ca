package domain

// Domain names of the built-in handlers. The category of a domain equals its name.
const (
	DomainRegulatory = "regulatory"
	DomainAssessment = "assessment"
	DomainAnalytics  = "analytics"
	DomainGeneral    = "general"
)

// CategoryGeneral is the category that earns no confidence bonus.
const CategoryGeneral = DomainGeneral

// ImpactLevel grades how much an answer matters for compliance.
type ImpactLevel string

const (
	ImpactLow      ImpactLevel = "low"
	ImpactMedium   ImpactLevel = "medium"
	ImpactHigh     ImpactLevel = "high"
	ImpactCritical ImpactLevel = "critical"
)

// Valid reports whether the level is one of the known values.
func (l ImpactLevel) Valid() bool {
	switch l {
	case ImpactLow, ImpactMedium, ImpactHigh, ImpactCritical:
		return true
	}
	return false
}

// Elevated reports whether the level is high or critical.
func (l ImpactLevel) Elevated() bool {
	return l == ImpactHigh || l == ImpactCritical
}

// SourceType classifies a citation.
type SourceType string

const (
	SourceRegulation SourceType = "regulation"
	SourceGuidance   SourceType = "guidance"
	SourceAnalytics  SourceType = "analytics"
	SourceAssessment SourceType = "assessment"
	SourceCompliance SourceType = "compliance"
)

// Expertise levels understood by personalization.
const (
	ExpertiseBeginner     = "beginner"
	ExpertiseIntermediate = "intermediate"
	ExpertiseExpert       = "expert"
)

// Response styles understood by personalization.
const (
	StyleConcise  = "concise"
	StyleDetailed = "detailed"
)

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
