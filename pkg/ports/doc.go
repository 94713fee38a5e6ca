/*
Package ports defines the driven ports (interfaces) of the triage engine.

These interfaces decouple the routing core from external collaborators, allowing
the engine to consult different knowledge backends and emit usage analytics to
different sinks without changing handler code.

# Key Interfaces

  - KnowledgeStore: read-only query of curated KnowledgeEntry records by category and tokens.
  - KnowledgeWriter, KnowledgeLister: optional capabilities of writable and enumerable stores.
  - UsageRecorder: fire-and-forget sink for per-request usage records.
  - UsageSink: synchronous writer drained by the asynchronous recorder.
  - DistributedLocker: cross-process mutual exclusion for store writers.

RunKnowledgeStoreContract is a reusable test suite every KnowledgeStore adapter runs
against ContractEntries.
*/
package ports
