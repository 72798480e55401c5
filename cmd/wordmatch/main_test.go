package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/wordmatch/internal/config"
	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/store"
	"github.com/verte-zerg/wordmatch/internal/wordlist"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("WORDMATCH_DB", filepath.Join(dir, "test.db"))
	t.Setenv("WORDMATCH_UNITS", "")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func seedMistakes(t *testing.T, counts map[string]int) {
	t.Helper()
	st, err := store.Open(config.DefaultDBPath())
	require.NoError(t, err)
	defer closeStore(st)
	require.NoError(t, st.ReplaceMistakes(context.Background(), counts))
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	meta, err := toml.Decode(defaultConfigTemplate(), &cfg)
	require.NoError(t, err)
	assert.Empty(t, meta.Undecoded())

	var lines []string
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		switch {
		case strings.HasPrefix(line, "["):
			lines = append(lines, line)
		case strings.HasPrefix(line, "# ") && strings.Contains(line, " = "):
			lines = append(lines, strings.TrimPrefix(line, "# "))
		}
	}
	meta, err = toml.Decode(strings.Join(lines, "\n"), &cfg)
	require.NoError(t, err)
	assert.Empty(t, meta.Undecoded())
	require.NotNil(t, cfg.Play.SettleMS)
	assert.Equal(t, defaultSettleMS, *cfg.Play.SettleMS)
	assert.Equal(t, defaultLogLevel, *cfg.Log.Level)
}

func TestValidateConfig(t *testing.T) {
	good := model.Config{Window: 5, SettleDelay: 420 * time.Millisecond, FadeDelay: 260 * time.Millisecond, LogLevel: "info"}
	require.NoError(t, validateConfig(good))

	bad := good
	bad.Window = 0
	assert.ErrorContains(t, validateConfig(bad), "--window")

	bad = good
	bad.SettleDelay = 6 * time.Second
	assert.ErrorContains(t, validateConfig(bad), "--settle-ms")

	bad = good
	bad.LogLevel = "trace"
	assert.ErrorContains(t, validateConfig(bad), "--log-level")
}

func TestFlagsOverrideFileConfig(t *testing.T) {
	dir := setupEnv(t)
	cfgPath := filepath.Join(dir, "config", "wordmatch", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	require.NoError(t, os.WriteFile(cfgPath, []byte("[play]\nwindow = 3\nunit = \"food\"\n[log]\nlevel = \"debug\"\n"), 0o600))

	root := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--window", "7"}))
	cfg, err := loadPlayConfig(root)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Window)
	assert.Equal(t, "food", cfg.Unit)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 420*time.Millisecond, cfg.SettleDelay)
}

func TestUnitsPathPrecedence(t *testing.T) {
	setupEnv(t)
	fromFile := "/srv/units.toml"
	assert.Equal(t, fromFile, unitsPath(config.FileConfig{Play: config.PlayConfig{UnitsFile: &fromFile}}))
	assert.Equal(t, "", unitsPath(config.FileConfig{}))

	t.Setenv("WORDMATCH_UNITS", "/env/units.xlsx")
	assert.Equal(t, "/env/units.xlsx", unitsPath(config.FileConfig{Play: config.PlayConfig{UnitsFile: &fromFile}}))
}

func TestUnitsCommandListsReview(t *testing.T) {
	setupEnv(t)
	seedMistakes(t, map[string]int{"animals:1": 2, "gone:4": 1})

	out, err := execute(t, "units")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[1], "review")
	assert.Contains(t, out, "animals")
}

func TestReviewAndResetCommands(t *testing.T) {
	setupEnv(t)
	seedMistakes(t, map[string]int{"animals:1": 2})

	out, err := execute(t, "review")
	require.NoError(t, err)
	assert.Contains(t, out, "Hund")
	assert.Contains(t, out, "animals:1")

	out, err = execute(t, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 review words.")

	out, err = execute(t, "review")
	require.NoError(t, err)
	assert.Contains(t, out, "No words to review.")
}

func TestStatsCommand(t *testing.T) {
	setupEnv(t)
	st, err := store.Open(config.DefaultDBPath())
	require.NoError(t, err)
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := st.InsertRound(context.Background(), model.RoundRecord{
			UnitID:    "animals",
			StartedAt: start.Add(time.Duration(i) * time.Hour),
			EndedAt:   start.Add(time.Duration(i)*time.Hour + time.Minute),
			Total:     8,
			Mistakes:  i,
		})
		require.NoError(t, err)
	}
	closeStore(st)

	out, err := execute(t, "stats", "--last", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Rounds: 2")
	assert.Contains(t, out, "History")
	assert.Contains(t, out, "Rounds by unit")

	_, err = execute(t, "stats", "--since", "May 1")
	assert.Error(t, err)
}

func TestImportCommandWritesUnits(t *testing.T) {
	dir := setupEnv(t)
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Colors"))
	require.NoError(t, f.SetSheetRow("Colors", "A1", &[]interface{}{"de", "en"}))
	require.NoError(t, f.SetSheetRow("Colors", "A2", &[]interface{}{"rot", "red"}))
	src := filepath.Join(dir, "colors.xlsx")
	require.NoError(t, f.SaveAs(src))
	require.NoError(t, f.Close())

	out := filepath.Join(dir, "units.toml")
	_, err := execute(t, "import", src, "--out", out)
	require.NoError(t, err)

	units, err := wordlist.LoadUnits(out)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "colors", units[0].ID)
	assert.Equal(t, []model.SourcePair{{EN: "red", DE: "rot"}}, units[0].Pairs)

	_, err = execute(t, "import", src, "--out", out)
	assert.ErrorContains(t, err, "already exists")
	_, err = execute(t, "import", src, "--out", out, "--force")
	assert.NoError(t, err)
}
