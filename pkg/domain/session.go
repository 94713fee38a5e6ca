package domain

import (
	"strings"
	"time"
)

// ConversationMessage is one turn of the caller supplied history.
type ConversationMessage struct {
	Role      string    `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Preferences are the user settings that drive personalization.
type Preferences struct {
	ResponseStyle  string   `json:"response_style,omitempty" yaml:"response_style,omitempty"`
	ExpertiseLevel string   `json:"expertise_level,omitempty" yaml:"expertise_level,omitempty"`
	FocusAreas     []string `json:"focus_areas,omitempty" yaml:"focus_areas,omitempty"`
}

// SessionContext is the optional request context. It is owned by the caller and
// must be treated as read-only for the duration of a request.
type SessionContext struct {
	UserID             string                `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	OrganizationID     string                `json:"organization_id,omitempty" yaml:"organization_id,omitempty"`
	TherapeuticArea    string                `json:"therapeutic_area,omitempty" yaml:"therapeutic_area,omitempty"`
	Persona            string                `json:"persona,omitempty" yaml:"persona,omitempty"`
	ActiveAssessmentID string                `json:"active_assessment_id,omitempty" yaml:"active_assessment_id,omitempty"`
	History            []ConversationMessage `json:"history,omitempty" yaml:"history,omitempty"`
	Preferences        Preferences           `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}

// Expertise returns the normalized expertise level, or "" for a nil context.
func (c *SessionContext) Expertise() string {
	if c == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(c.Preferences.ExpertiseLevel))
}

// Style returns the normalized response style, or "" for a nil context.
func (c *SessionContext) Style() string {
	if c == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(c.Preferences.ResponseStyle))
}

// Area returns the trimmed therapeutic area, or "" for a nil context.
func (c *SessionContext) Area() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.TherapeuticArea)
}

// PersonaTag returns the trimmed persona tag, or "" for a nil context.
func (c *SessionContext) PersonaTag() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Persona)
}

// Focus returns the lowercased, non-empty focus areas.
func (c *SessionContext) Focus() []string {
	if c == nil {
		return nil
	}
	var out []string
	for _, f := range c.Preferences.FocusAreas {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// LastUserMessage returns the most recent user turn in the history.
func (c *SessionContext) LastUserMessage() (string, bool) {
	if c == nil {
		return "", false
	}
	for i := len(c.History) - 1; i >= 0; i-- {
		msg := c.History[i]
		if msg.Role == RoleUser && strings.TrimSpace(msg.Content) != "" {
			return msg.Content, true
		}
	}
	return "", false
}

// AssessmentID returns the trimmed active assessment id, or "" for a nil context.
func (c *SessionContext) AssessmentID() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.ActiveAssessmentID)
}
