package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/triage/internal/config"
	"github.com/aretw0/triage/internal/logging"
	"github.com/aretw0/triage/internal/testutils"
	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/router"
)

const knowledgeYAML = `entries:
  - id: asm-score
    question: How is my readiness score calculated?
    category: assessment
    subcategory: Scoring
    answer: Readiness is the weighted mean of section scores.
    impact: low
    keywords: [readiness, score]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func baseConfig() *config.Config {
	return &config.Config{
		Log:    config.LogConfig{Level: "info", Format: "text"},
		Lookup: config.LookupConfig{Timeout: time.Second},
		Usage:  config.UsageConfig{Queue: 16},
		HTTP:   config.HTTPConfig{Port: 8080},
		Input:  config.InputConfig{MaxSize: 4096},
	}
}

func TestCreateApp_FilesOnly(t *testing.T) {
	dir := t.TempDir()
	cfg := baseConfig()
	cfg.Knowledge.Files = []string{writeFile(t, dir, "kb.yaml", knowledgeYAML)}

	app, err := createApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer app.Close(context.Background())

	resp := app.Engine.Ask(context.Background(), "How is my readiness score calculated?", nil)
	assert.Equal(t, domain.ResolutionCurated, resp.Resolution)
	assert.NoError(t, app.Health(context.Background()))
}

var releaseEntry = domain.KnowledgeEntry{
	ID:          "gen-release",
	Question:    "Who signs off on model releases?",
	Category:    domain.DomainGeneral,
	Subcategory: "Release Approval",
	Answer:      "The model owner and quality assurance sign off together.",
	Impact:      domain.ImpactMedium,
	Keywords:    []string{"release", "sign off"},
}

func TestCreateApp_KnowledgeDir(t *testing.T) {
	dir, _ := testutils.SetupKnowledgeRepo(t, releaseEntry)
	cfg := baseConfig()
	cfg.Knowledge.Dir = dir

	app, err := createApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer app.Close(context.Background())
	require.NotNil(t, app.Loam)

	resp := app.Engine.Ask(context.Background(), "Who signs off on model releases?", nil)
	assert.Equal(t, domain.ResolutionCurated, resp.Resolution)
	assert.Equal(t, releaseEntry.Answer, resp.Answer)
}

func TestCreateApp_BuiltinKnowledge(t *testing.T) {
	cfg := baseConfig()
	cfg.Knowledge.Builtin = true

	app, err := createApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer app.Close(context.Background())

	resp := app.Engine.Ask(context.Background(), "Which compliance metrics are trending down?", nil)
	assert.Equal(t, domain.DomainAnalytics, resp.Category)
	assert.Equal(t, domain.ResolutionCurated, resp.Resolution)

	cfg.Knowledge.Builtin = false
	bare, err := createApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer bare.Close(context.Background())

	resp = bare.Engine.Ask(context.Background(), "Which compliance metrics are trending down?", nil)
	assert.NotEqual(t, domain.ResolutionCurated, resp.Resolution)
}

func TestCreateApp_AllBackends(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	dir := t.TempDir()
	loamDir, _ := testutils.SetupKnowledgeRepo(t, releaseEntry)
	cfg := baseConfig()
	cfg.Knowledge.Files = []string{writeFile(t, dir, "kb.yaml", knowledgeYAML)}
	cfg.Knowledge.Dir = loamDir
	cfg.Knowledge.SQLite = filepath.Join(dir, "triage.db")
	cfg.Knowledge.Redis.Addr = mr.Addr()
	cfg.Knowledge.Redis.Prefix = "triage:"
	cfg.Usage.SQLite = true
	cfg.Usage.Redis = true

	app, err := createApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	resp := app.Engine.Ask(context.Background(), "How is my readiness score calculated?", nil)
	assert.Equal(t, domain.ResolutionCurated, resp.Resolution, "composite store still serves file entries")
	resp = app.Engine.Ask(context.Background(), "Who signs off on model releases?", nil)
	assert.Equal(t, releaseEntry.Answer, resp.Answer, "composite store serves loam entries")
	require.NoError(t, app.Health(context.Background()))
	require.NoError(t, app.Close(context.Background()))

	assert.True(t, mr.Exists("triage:usage"), "usage streamed to redis")

	families, err := app.Registry.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "triage_questions_total")
}

func TestCreateApp_BadFile(t *testing.T) {
	cfg := baseConfig()
	cfg.Knowledge.Files = []string{filepath.Join(t.TempDir(), "missing.yaml")}
	_, err := createApp(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestRunRoutes(t *testing.T) {
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	require.NoError(t, RunRoutes(context.Background(), &buf, RoutesOptions{}))
	out := buf.String()
	assert.Contains(t, out, "general (default)")
	assert.Contains(t, out, "fda -> regulatory")

	buf.Reset()
	require.NoError(t, RunRoutes(context.Background(), &buf, RoutesOptions{Question: "benchmark our KPIs", JSON: true}))
	var dec router.Decision
	require.NoError(t, json.Unmarshal(buf.Bytes(), &dec))
	assert.Equal(t, domain.DomainAnalytics, dec.Domain)

	buf.Reset()
	require.NoError(t, RunRoutes(context.Background(), &buf, RoutesOptions{Question: "fda clearance", Mermaid: true}))
	assert.Contains(t, buf.String(), "class regulatory current;")
}

func TestRunAsk_JSON(t *testing.T) {
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	err := RunAsk(context.Background(), &buf, AskOptions{
		Question:  "What are the FDA requirements for AI/ML medical devices?",
		Expertise: "beginner",
		JSON:      true,
	})
	require.NoError(t, err)

	var resp domain.AgentResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, domain.DomainRegulatory, resp.Category)
	assert.Equal(t, "fda", resp.Specialist)
}

func TestRunAsk_BadContext(t *testing.T) {
	err := RunAsk(context.Background(), &bytes.Buffer{}, AskOptions{Question: "hi", Context: "{"})
	assert.ErrorContains(t, err, "--context")
}

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	kb := writeFile(t, dir, "kb.yaml", knowledgeYAML)

	var buf bytes.Buffer
	require.NoError(t, RunValidate(context.Background(), &buf, Options{}, kb))
	assert.Contains(t, buf.String(), "knowledge files: ok (1 entries)")

	bad := writeFile(t, dir, "bad.yaml", "entries:\n  - id: x\n")
	assert.Error(t, RunValidate(context.Background(), &bytes.Buffer{}, Options{}, bad))
}

func TestAskOptions_SessionContext(t *testing.T) {
	sc, err := AskOptions{}.sessionContext()
	require.NoError(t, err)
	assert.Nil(t, sc)

	sc, err = AskOptions{Context: `{"user_id":"u1"}`, Style: "concise", Area: "oncology"}.sessionContext()
	require.NoError(t, err)
	assert.Equal(t, "u1", sc.UserID)
	assert.Equal(t, "concise", sc.Preferences.ResponseStyle)
	assert.Equal(t, "oncology", sc.TherapeuticArea)
}
