/*
Package domain contains the core data model of the triage engine.

It defines the values that flow through the routing pipeline: the caller supplied
SessionContext, the curated KnowledgeEntry records consulted by the matcher, the
static DomainCapability descriptors built at start-up and the AgentResponse envelope
returned to the caller. The package is pure and free of I/O, following the same
hexagonal split as the ports and adapters packages.

# Key Entities

  - SessionContext: optional per-request context (user, organization, preferences, history).
  - KnowledgeEntry: a curated question/answer record owned by an external knowledge store.
  - DomainCapability: immutable descriptor of what a domain handler covers.
  - AgentResponse: the structured answer (text, sources, action items, confidence).
  - UsageRecord: the fire-and-forget analytics record emitted after each request.
*/
package domain
