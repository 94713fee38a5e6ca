package domain

import "time"

// UsageRecord is emitted once per routed question.
type UsageRecord struct {
	ID             string        `json:"id"`
	Domain         string        `json:"domain"`
	Specialist     string        `json:"specialist,omitempty"`
	Persona        string        `json:"persona,omitempty"`
	Elapsed        time.Duration `json:"elapsed"`
	QuestionPrefix string        `json:"question_prefix"`
	Fallback       bool          `json:"fallback,omitempty"`
	At             time.Time     `json:"at"`
}

// ElapsedMillis returns the elapsed time in milliseconds.
func (u UsageRecord) ElapsedMillis() int64 {
	return u.Elapsed.Milliseconds()
}
