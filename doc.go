/*
Package triage routes compliance questions to domain handlers and composes
structured, personalized answers.

A question is classified by keyword into one of four domains (regulatory,
assessment, analytics, general). The domain handler then tries, in order, a
curated knowledge lookup, a topic specialist (FDA, EMA, MHRA, data privacy) and
a generic clarifying answer. Every call yields an AgentResponse with a
confidence in [0,1]; failures inside a handler are rerouted to the general
domain and never surface to the caller.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/triage"
		"github.com/aretw0/triage/pkg/adapters/file"
	)

	func main() {
		store, err := file.NewStore("knowledge/regulatory.yaml")
		if err != nil {
			log.Fatal(err)
		}

		eng, err := triage.New(triage.WithKnowledgeStore(store))
		if err != nil {
			log.Fatal(err)
		}
		defer eng.Close(context.Background())

		resp := eng.Ask(context.Background(), "What are the FDA requirements for AI/ML medical devices?", nil)
		fmt.Println(resp.Category, resp.Confidence)
	}

# Adapters

Knowledge stores live under pkg/adapters: memory, file bundles (YAML, JSON,
TOML), a loam markdown directory, SQLite, Redis, and a composite that queries
several of them concurrently. The same package tree carries the HTTP and MCP
transports. Usage records can be sent to slog, Prometheus, SQLite or a Redis
stream through pkg/usage.
*/
package triage
