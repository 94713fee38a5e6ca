// Package matcher scores questions against curated knowledge entries.
//
// Scoring is additive and deterministic:
//
//	exact normalized question        +100
//	variation equal or containment    +80
//	canonical containment             +70
//	each shared keyword               +10
//
// The highest score wins; the first entry wins ties. Text helpers (Normalize,
// Keywords, ContainsPhrase, CountPhrase) are shared with the router and the
// knowledge store adapters so that every component tokenizes the same way.
package matcher
