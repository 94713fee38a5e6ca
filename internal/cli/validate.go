package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/triage/pkg/adapters/file"
	loamstore "github.com/aretw0/triage/pkg/adapters/loam"
	"github.com/aretw0/triage/pkg/router"
)

// RunValidate checks the configuration, the routing table and every local
// knowledge source without starting a server.
func RunValidate(ctx context.Context, out io.Writer, opts Options, extraFiles ...string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "config: ok")

	table := router.DefaultTable()
	if cfg.Routing.Table != "" {
		if table, err = router.LoadTable(cfg.Routing.Table); err != nil {
			return err
		}
	}
	if _, err := router.New(router.WithTable(table)); err != nil {
		return err
	}
	fmt.Fprintf(out, "routing table: ok (%d domains, %d priority terms, default %s)\n",
		len(table.Domains), len(table.Priority), table.Default)

	files := append(append([]string{}, cfg.Knowledge.Files...), extraFiles...)
	if len(files) > 0 {
		entries, err := file.LoadAll(files...)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "knowledge files: ok (%d entries)\n", len(entries))
	}

	if cfg.Knowledge.Dir != "" {
		st, err := loamstore.Open(ctx, cfg.Knowledge.Dir)
		if err != nil {
			return err
		}
		entries, err := st.List(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "knowledge dir: ok (%d entries)\n", len(entries))
	}
	return nil
}
