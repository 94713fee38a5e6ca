package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aretw0/triage/internal/presentation/graph"
)

// RoutesOptions configures the routes command.
type RoutesOptions struct {
	Options
	// Question, when set, is classified instead of listing the table.
	Question string
	JSON     bool
	Mermaid  bool
}

// RunRoutes prints the registered domains, or the routing decision for one question.
func RunRoutes(ctx context.Context, out io.Writer, opts RoutesOptions) error {
	cfg, err := loadConfig(opts.Options)
	if err != nil {
		return err
	}
	// Routing needs no knowledge backend.
	cfg.Knowledge.Builtin = false
	cfg.Knowledge.Files = nil
	cfg.Knowledge.Dir = ""
	cfg.Knowledge.SQLite = ""
	cfg.Knowledge.Redis.Addr = ""
	cfg.Usage.Redis, cfg.Usage.SQLite = false, false

	app, err := createApp(ctx, cfg, createLogger(cfg))
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		app.Close(closeCtx)
	}()

	if opts.Mermaid {
		var overlay *graph.Overlay
		if opts.Question != "" {
			overlay = &graph.Overlay{Decision: app.Engine.Classify(opts.Question, nil)}
		}
		_, err := io.WriteString(out, graph.GenerateMermaid(app.Engine.Table(), overlay))
		return err
	}

	if opts.Question != "" {
		dec := app.Engine.Classify(opts.Question, nil)
		if opts.JSON {
			return json.NewEncoder(out).Encode(dec)
		}
		how := "keywords"
		switch {
		case dec.Term != "":
			how = "priority term " + dec.Term
		case dec.Default:
			how = "default"
		}
		fmt.Fprintf(out, "%s (%s, score %d)\n", dec.Domain, how, dec.Score)
		return nil
	}

	caps := app.Engine.Capabilities()
	if opts.JSON {
		return json.NewEncoder(out).Encode(caps)
	}

	table := app.Engine.Table()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tSUBDOMAINS\tKEYWORDS")
	for _, c := range caps {
		marker := ""
		if c.Domain == table.Default {
			marker = " (default)"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\n", c.Domain, marker, strings.Join(c.Subdomains, ", "), strings.Join(c.Keywords, ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Priority terms:")
	for _, p := range table.Priority {
		fmt.Fprintf(out, "  %s -> %s\n", p.Term, p.Domain)
	}
	return nil
}
