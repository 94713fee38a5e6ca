// Package handler implements the domain handlers the router dispatches to.
//
// A Handler answers a question in three steps: a time-bounded curated lookup, a
// delegation to the best topic specialist, and a generic clarifying fallback. Each
// step returns a Result so the try-next-step flow is plain data.
package handler
