package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordmatch/internal/catalog"
	"github.com/verte-zerg/wordmatch/internal/config"
	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/stats"
	"github.com/verte-zerg/wordmatch/internal/store"
	"github.com/verte-zerg/wordmatch/internal/wordlist"
)

const defaultHistoryWindow = 5

var (
	statsUnit   string
	statsSince  string
	statsLast   int
	statsWindow int

	importOut       string
	importForce     bool
	importNoHeader  bool
	importSourceCol string
	importTargetCol string
)

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func loadConfiguredUnits() ([]model.Unit, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return loadStaticUnits(unitsPath(fileCfg))
}

func newUnitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List units, including the review unit",
		Args:  cobra.NoArgs,
		RunE:  runUnitsCmd,
	}
}

func runUnitsCmd(cmd *cobra.Command, _ []string) error {
	static, err := loadConfiguredUnits()
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	mistakes, err := st.LoadMistakes(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load mistakes: %w", err)
	}
	return stats.RenderUnits(cmd.OutOrStdout(), catalog.Derive(static, mistakes))
}

func newReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "List words with recorded mistakes",
		Args:  cobra.NoArgs,
		RunE:  runReviewCmd,
	}
}

func runReviewCmd(cmd *cobra.Command, _ []string) error {
	static, err := loadConfiguredUnits()
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	mistakes, err := st.LoadMistakes(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load mistakes: %w", err)
	}
	return stats.RenderReview(cmd.OutOrStdout(), static, mistakes)
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear recorded mistakes",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	mistakes, err := st.LoadMistakes(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load mistakes: %w", err)
	}
	if err := st.ClearMistakes(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear mistakes: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d review words.\n", len(mistakes))
	return err
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Convert a spreadsheet into a units file",
		Long:  "Each sheet becomes a unit. Column A holds the German word, column B the English one.",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importOut, "out", "", "output path, '-' for stdout (default: units.toml in the config dir)")
	cmd.Flags().BoolVar(&importForce, "force", false, "overwrite an existing units file")
	cmd.Flags().BoolVar(&importNoHeader, "no-header", false, "the first row holds words, not headers")
	cmd.Flags().StringVar(&importSourceCol, "de-col", "A", "column with German words")
	cmd.Flags().StringVar(&importTargetCol, "en-col", "B", "column with English words")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	units, err := wordlist.LoadXLSX(args[0], wordlist.XLSXOptions{
		SourceColumn: importSourceCol,
		TargetColumn: importTargetCol,
		SkipHeader:   !importNoHeader,
	})
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", args[0], err)
	}
	if importOut == "-" {
		return wordlist.WriteTOML(cmd.OutOrStdout(), units)
	}

	outPath := importOut
	if outPath == "" {
		outPath = filepath.Join(config.XDGConfigHome(), "wordmatch", "units.toml")
	}
	if !importForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("units file already exists: %s (use --force to overwrite)", outPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat units file: %w", err)
		}
	}
	if err := writeUnitsFile(outPath, units); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	pairs := 0
	for _, u := range units {
		pairs += len(u.Pairs)
	}
	logErrf("Wrote %d units (%d pairs) to %s\n", len(units), pairs, outPath)
	return nil
}

func writeUnitsFile(path string, units []model.SourceUnit) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create units dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "units-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp units file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := wordlist.WriteTOML(writer, units); err != nil {
		return fmt.Errorf("failed to encode units: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush units file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close units file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write units file: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show round history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsUnit, "unit", "", "unit filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N rounds")
	cmd.Flags().IntVar(&statsWindow, "window", defaultHistoryWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsWindow <= 0 {
		return fmt.Errorf("--window must be > 0")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	report, err := stats.BuildReport(cmd.Context(), st, model.StatsConfig{
		Unit:  statsUnit,
		Since: sinceTime,
		Last:  statsLast,
	})
	if err != nil {
		return fmt.Errorf("failed to load rounds: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Rounds); err != nil {
		return err
	}
	if err := stats.RenderHistory(out, report.Rounds, statsWindow, stats.TerminalWidth()); err != nil {
		return err
	}
	return renderUnitCounts(cmd, report.Units)
}

func renderUnitCounts(cmd *cobra.Command, counts map[string]int) error {
	if len(counts) == 0 {
		return nil
	}
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, "Rounds by unit"); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := fmt.Fprintf(out, "  %-16s %d\n", id, counts[id]); err != nil {
			return err
		}
	}
	return nil
}
