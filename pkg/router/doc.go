// Package router dispatches compliance questions to domain handlers.
//
// Routing is a pure function of the sanitized question, the optional session
// context and an immutable Table: priority terms first, then keyword scoring,
// then the default domain. The Router never fails; every path ends in a
// well-formed domain.AgentResponse.
package router
