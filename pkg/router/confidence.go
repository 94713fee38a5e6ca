package router

import "github.com/aretw0/triage/pkg/domain"

// FallbackConfidence is the fixed confidence of a response rerouted after a fault.
const FallbackConfidence = 0.5

// Score is the evidence score of a response: 0.5 base, +0.2 outside the general
// category, +0.1 for high or critical impact, +0.1 with sources and +0.1 with
// action items, clamped to [0, 1].
func Score(resp domain.AgentResponse) float64 {
	tenths := 5
	if resp.Category != domain.CategoryGeneral {
		tenths += 2
	}
	if resp.Impact.Elevated() {
		tenths++
	}
	if len(resp.Sources) > 0 {
		tenths++
	}
	if len(resp.ActionItems) > 0 {
		tenths++
	}
	return clamp(float64(tenths) / 10)
}

// Finalize returns the confidence reported to the caller. Curated and fault
// responses keep their fixed step confidence. Other responses get the lower of the
// step confidence and Score.
func Finalize(resp domain.AgentResponse) float64 {
	switch resp.Resolution {
	case domain.ResolutionCurated, domain.ResolutionFault:
		return clamp(resp.Confidence)
	}
	s := Score(resp)
	if resp.Confidence > 0 && resp.Confidence < s {
		return clamp(resp.Confidence)
	}
	return s
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
