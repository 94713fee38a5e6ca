package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aretw0/triage/internal/presentation/tui"
	"github.com/aretw0/triage/pkg/domain"
)

// AskOptions configures the ask command.
type AskOptions struct {
	Options
	Question  string
	Context   string // raw JSON SessionContext
	Expertise string
	Style     string
	Area      string
	JSON      bool
}

// sessionContext merges the JSON context with the convenience flags.
func (o AskOptions) sessionContext() (*domain.SessionContext, error) {
	var sc *domain.SessionContext
	if o.Context != "" {
		sc = &domain.SessionContext{}
		if err := json.Unmarshal([]byte(o.Context), sc); err != nil {
			return nil, fmt.Errorf("error parsing --context JSON: %w", err)
		}
	}
	if o.Expertise == "" && o.Style == "" && o.Area == "" {
		return sc, nil
	}
	if sc == nil {
		sc = &domain.SessionContext{}
	}
	if o.Expertise != "" {
		sc.Preferences.ExpertiseLevel = o.Expertise
	}
	if o.Style != "" {
		sc.Preferences.ResponseStyle = o.Style
	}
	if o.Area != "" {
		sc.TherapeuticArea = o.Area
	}
	return sc, nil
}

// RunAsk answers one question and prints it to out.
func RunAsk(ctx context.Context, out io.Writer, opts AskOptions) error {
	sc, err := opts.sessionContext()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts.Options)
	if err != nil {
		return err
	}
	logger := createLogger(cfg)

	app, err := createApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Close(closeCtx); err != nil {
			logger.Warn("shutdown incomplete", "err", err)
		}
	}()

	resp := app.Engine.Ask(ctx, opts.Question, sc)

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	styled := false
	if f, ok := out.(*os.File); ok {
		styled = tui.IsTerminal(f)
	}
	return tui.PrintResponse(out, resp, styled)
}
