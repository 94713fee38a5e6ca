package handler

import "github.com/aretw0/triage/pkg/domain"

// Outcome is the result kind of one pipeline step.
type Outcome int

const (
	NoMatch Outcome = iota
	Matched
	Fault
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Fault:
		return "fault"
	default:
		return "no_match"
	}
}

// Result is what a pipeline step produced.
type Result struct {
	Outcome  Outcome
	Response domain.AgentResponse
	Err      error
}

func matched(resp domain.AgentResponse) Result {
	return Result{Outcome: Matched, Response: resp}
}

func noMatch(err error) Result {
	return Result{Outcome: NoMatch, Err: err}
}

func fault(err error) Result {
	return Result{Outcome: Fault, Err: err}
}
