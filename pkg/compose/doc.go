/*
Package compose builds AgentResponse values.

Composer.Compose is pure: given a Draft (domain, subcategory, answer, citations,
action items, impact) and an optional SessionContext it returns a finished response
with classified sources, the domain's fixed related questions and personalized text.
Confidence is left to the caller; the router finalizes it.

Personalization is an ordered list of literal phrase substitutions. Every rule is
idempotent: applying the personalizer to its own output is a no-op.
*/
package compose
