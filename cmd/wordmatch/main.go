// Package main provides the CLI entrypoint for wordmatch.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordmatch/internal/catalog"
	"github.com/verte-zerg/wordmatch/internal/config"
	"github.com/verte-zerg/wordmatch/internal/game"
	"github.com/verte-zerg/wordmatch/internal/generator"
	"github.com/verte-zerg/wordmatch/internal/logging"
	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/round"
	"github.com/verte-zerg/wordmatch/internal/scoring"
	"github.com/verte-zerg/wordmatch/internal/store"
	"github.com/verte-zerg/wordmatch/internal/tui"
	"github.com/verte-zerg/wordmatch/internal/wordlist"
)

const (
	defaultSettleMS = 420
	defaultFadeMS   = 260
	defaultLogLevel = "info"
	recordTimeout   = 5 * time.Second
)

var (
	playUnit      string
	playWindow    int
	playSettleMS  int
	playFadeMS    int
	playUnitsFile string
	playEphemeral bool
	playLogLevel  string
)

var validate = validator.New()

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logErrf("failed to load .env: %v\n", err)
	}
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordmatch",
		Short:         "TUI vocabulary matching game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playUnit, "unit", "", "unit id to start with (default: first unit)")
	rootCmd.Flags().IntVar(&playWindow, "window", round.DefaultWindow, "number of pairs visible at once")
	rootCmd.Flags().IntVar(&playSettleMS, "settle-ms", defaultSettleMS, "feedback delay before a match is committed (ms)")
	rootCmd.Flags().IntVar(&playFadeMS, "fade-ms", defaultFadeMS, "how long new cards stay highlighted (ms)")
	rootCmd.Flags().StringVar(&playUnitsFile, "units-file", "", "units file (.toml or .xlsx)")
	rootCmd.Flags().BoolVar(&playEphemeral, "ephemeral", false, "do not persist mistakes or rounds")
	rootCmd.Flags().StringVar(&playLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newUnitsCmd())
	rootCmd.AddCommand(newReviewCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func loadPlayConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if !cmd.Flags().Changed("units-file") {
		playUnitsFile = unitsPath(fileCfg)
	}
	applyStringConfig(cmd, "unit", &playUnit, fileCfg.Play.Unit)
	applyIntConfig(cmd, "window", &playWindow, fileCfg.Play.Window)
	applyIntConfig(cmd, "settle-ms", &playSettleMS, fileCfg.Play.SettleMS)
	applyIntConfig(cmd, "fade-ms", &playFadeMS, fileCfg.Play.FadeMS)
	applyBoolConfig(cmd, "ephemeral", &playEphemeral, fileCfg.Play.Ephemeral)
	applyStringConfig(cmd, "log-level", &playLogLevel, fileCfg.Log.Level)

	cfg := model.Config{
		Unit:        playUnit,
		Window:      playWindow,
		SettleDelay: time.Duration(playSettleMS) * time.Millisecond,
		FadeDelay:   time.Duration(playFadeMS) * time.Millisecond,
		UnitsFile:   playUnitsFile,
		Ephemeral:   playEphemeral,
		LogLevel:    strings.ToLower(playLogLevel),
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPlayConfig(cmd)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			// Best-effort close for the log file.
			_ = cerr
		}
	}()
	log := logging.Setup(cfg.LogLevel, logFile)

	static, err := loadStaticUnits(cfg.UnitsFile)
	if err != nil {
		return err
	}

	var mistakes scoring.MistakeStore = store.NewMemoryMistakes()
	var recorder game.RoundRecorder
	if !cfg.Ephemeral {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		mistakes = store.NewMistakes(st, log)
		recorder = roundRecorder(st, log)
	}

	g, err := game.New(static, mistakes, game.Options{
		Unit:     cfg.Unit,
		Window:   cfg.Window,
		Shuffler: generator.New(),
		Recorder: recorder,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	log.Info("starting game", "unit", g.ActiveUnit().ID, "units", len(static), "ephemeral", cfg.Ephemeral)

	ui := tui.NewModel(g, tui.Options{
		SettleDelay: cfg.SettleDelay,
		FadeDelay:   cfg.FadeDelay,
		Logger:      log,
	})
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func roundRecorder(st *store.Store, log *slog.Logger) game.RoundRecorder {
	return game.RecorderFunc(func(rec model.RoundRecord) {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		id, err := st.InsertRound(ctx, rec)
		if err != nil {
			log.Warn("failed to save round", "unit", rec.UnitID, "error", err)
			return
		}
		log.Info("round completed", "id", id, "unit", rec.UnitID, "total", rec.Total, "mistakes", rec.Mistakes)
	})
}

// unitsPath resolves the units file: WORDMATCH_UNITS, then the config file,
// then the user's units.toml. Empty selects the bundled units.
func unitsPath(fileCfg config.FileConfig) string {
	if v := os.Getenv("WORDMATCH_UNITS"); v != "" {
		return v
	}
	if fileCfg.Play.UnitsFile != nil && *fileCfg.Play.UnitsFile != "" {
		return *fileCfg.Play.UnitsFile
	}
	return config.DefaultUnitsPath()
}

func loadStaticUnits(path string) ([]model.Unit, error) {
	src, err := wordlist.LoadUnits(path)
	if err != nil {
		if path == "" {
			return nil, fmt.Errorf("failed to load bundled units: %w", err)
		}
		return nil, fmt.Errorf("failed to load units from %s: %w", path, err)
	}
	return catalog.Ingest(src), nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordmatch configuration
# Uncomment a value to enable it. CLI flags override config values.

[play]
# unit = "animals"        # Unit to start with (default: first unit)
# window = %d              # Pairs visible at once (1-10)
# settle-ms = %d         # Feedback delay before a match is committed
# fade-ms = %d           # How long new cards stay highlighted
# units-file = ""         # Units file (.toml or .xlsx); empty uses bundled units
# ephemeral = false       # Do not persist mistakes or rounds

[log]
# level = %q           # debug, info, warn or error
`,
		round.DefaultWindow,
		defaultSettleMS,
		defaultFadeMS,
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid value for %s", flagName(verrs[0].Field()))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func flagName(field string) string {
	switch field {
	case "Window":
		return "--window (must be 1-10)"
	case "SettleDelay":
		return "--settle-ms (must be 0-5000)"
	case "FadeDelay":
		return "--fade-ms (must be 0-5000)"
	case "LogLevel":
		return "--log-level (debug, info, warn, error)"
	default:
		return field
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
