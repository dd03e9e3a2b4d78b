package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordcsv/internal/config"
	"github.com/verte-zerg/wordcsv/internal/corpus"
	"github.com/verte-zerg/wordcsv/internal/csvfile"
	"github.com/verte-zerg/wordcsv/internal/model"
	"github.com/verte-zerg/wordcsv/internal/pipeline"
	"github.com/verte-zerg/wordcsv/internal/report"
	"github.com/verte-zerg/wordcsv/internal/store"
)

var (
	genPreset           string
	genLengths          []int
	genUnbucketed       bool
	genMinLength        int
	genMaxLength        int
	genMaxWords         int
	genNoStopwords      bool
	genStopwordPriority bool
	genSeed             int64
	genNaming           string
	genCombined         bool
	genOut              string
	genNoHistory        bool
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate CSV files (default command)",
		Args:  cobra.NoArgs,
		RunE:  runGenerateCmd,
	}
	addGenerateFlags(cmd)
	return cmd
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&genPreset, "preset", pipeline.DefaultPreset, "preset (all, enhanced, definitions)")
	cmd.Flags().IntSliceVar(&genLengths, "length", nil, "target word length, repeatable (default: preset lengths)")
	cmd.Flags().BoolVar(&genUnbucketed, "unbucketed", false, "write a single word_definitions.csv instead of per-length files")
	cmd.Flags().IntVar(&genMinLength, "min-length", model.DefaultMinLength, "shortest accepted word")
	cmd.Flags().IntVar(&genMaxLength, "max-length", model.DefaultMaxLength, "longest accepted word")
	cmd.Flags().IntVar(&genMaxWords, "max-words", 0, "entries per file, 0 for no cap (default: preset cap)")
	cmd.Flags().BoolVar(&genNoStopwords, "no-stopwords", false, "do not merge stopwords into the pool")
	cmd.Flags().BoolVar(&genStopwordPriority, "stopword-priority", false, "place stopwords ahead of shuffled words")
	cmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (default: clock)")
	cmd.Flags().StringVar(&genNaming, "naming", "", "file naming style (plain, enhanced, definitions)")
	cmd.Flags().BoolVar(&genCombined, "combined", false, "also write all_words_{min}_to_{max}_letters.csv")
	cmd.Flags().StringVar(&genOut, "out", ".", "output directory")
	cmd.Flags().BoolVar(&genNoHistory, "no-history", false, "do not record the run in the history database")
	addCorpusFlags(cmd)
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cmd, fileCfg.Generate)
	if err != nil {
		return err
	}
	history := !genNoHistory
	if fileCfg.Generate.History != nil && !cmd.Flags().Changed("no-history") {
		history = *fileCfg.Generate.History
	}
	cs := resolveCorpusSettings(cmd, fileCfg.Corpus)

	jobs, err := pipeline.Plan(settings)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(settings.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c, err := openCorpus(ctx, logger, cs)
	if err != nil {
		return err
	}

	started := time.Now()
	runner := pipeline.NewRunner(c, logger, settings.Seed)
	logger.Info("generating files",
		slog.String("preset", settings.Preset),
		slog.Int("files", len(jobs)),
		slog.Int64("seed", runner.Seed()),
	)
	results, runErr := runner.Run(ctx, jobs)
	run := model.RunSummary{
		StartedAt: started,
		EndedAt:   time.Now(),
		Preset:    settings.Preset,
		Seed:      runner.Seed(),
		CorpusDir: cs.Dir,
		OutDir:    settings.OutDir,
		Files:     results,
	}
	if runErr != nil {
		return runErr
	}

	if history {
		recordRun(ctx, logger, run)
	}

	out := cmd.OutOrStdout()
	if err := report.WriteSummary(out, run); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(run.Files) > 0 {
		first := run.Files[0].Path
		entries, err := csvfile.ReadFile(first)
		if err != nil {
			logger.Warn("failed to read sample", slog.String("file", first), slog.Any("error", err))
			return nil
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := report.WriteSample(out, first, entries); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// resolveSettings layers the preset, the config file and changed flags.
func resolveSettings(cmd *cobra.Command, cfg config.GenerateConfig) (pipeline.Settings, error) {
	flags := cmd.Flags()
	applyConfig(cmd, "preset", &genPreset, cfg.Preset)
	s, err := pipeline.PresetSettings(genPreset)
	if err != nil {
		return pipeline.Settings{}, err
	}

	explicitLengths := false
	if cfg.Lengths != nil {
		s.Lengths = cfg.Lengths
		explicitLengths = true
	}
	if flags.Changed("length") {
		s.Lengths = genLengths
		explicitLengths = true
	}
	if genUnbucketed {
		s.Lengths = nil
		explicitLengths = true
	}

	setInt(flags.Changed("min-length"), genMinLength, cfg.MinLength, &s.MinLength)
	setInt(flags.Changed("max-length"), genMaxLength, cfg.MaxLength, &s.MaxLength)
	if !explicitLengths && len(s.Lengths) > 0 {
		s.Lengths = clipLengths(s.Lengths, s.MinLength, s.MaxLength)
		if len(s.Lengths) == 0 {
			return pipeline.Settings{}, fmt.Errorf("preset %s has no lengths within [%d, %d]; pass --length or --unbucketed", s.Preset, s.MinLength, s.MaxLength)
		}
	}

	maxWords := cfg.MaxWords
	if flags.Changed("max-words") {
		maxWords = &genMaxWords
	}
	if maxWords != nil {
		switch v := *maxWords; {
		case v < 0:
			return pipeline.Settings{}, fmt.Errorf("--max-words must be >= 0")
		case v == 0:
			s.MaxWords = nil
		default:
			s.MaxWords = &v
		}
	}

	if cfg.Stopwords != nil {
		s.IncludeStopwords = *cfg.Stopwords
	}
	if flags.Changed("no-stopwords") {
		s.IncludeStopwords = !genNoStopwords
	}
	setBool(flags.Changed("stopword-priority"), genStopwordPriority, cfg.StopwordPriority, &s.StopwordPriority)
	setBool(flags.Changed("combined"), genCombined, cfg.Combined, &s.Combined)
	setString(flags.Changed("naming"), genNaming, cfg.Naming, &s.Naming)
	setString(flags.Changed("out"), genOut, cfg.OutDir, &s.OutDir)

	if cfg.Seed != nil {
		seed := *cfg.Seed
		s.Seed = &seed
	}
	if flags.Changed("seed") {
		seed := genSeed
		s.Seed = &seed
	}
	return s, nil
}

func setInt(changed bool, flagValue int, cfgValue *int, target *int) {
	if cfgValue != nil {
		*target = *cfgValue
	}
	if changed {
		*target = flagValue
	}
}

func setBool(changed bool, flagValue bool, cfgValue *bool, target *bool) {
	if cfgValue != nil {
		*target = *cfgValue
	}
	if changed {
		*target = flagValue
	}
}

func setString(changed bool, flagValue string, cfgValue *string, target *string) {
	if cfgValue != nil {
		*target = *cfgValue
	}
	if changed {
		*target = flagValue
	}
}

func clipLengths(lengths []int, min, max int) []int {
	out := make([]int, 0, len(lengths))
	for _, n := range lengths {
		if n >= min && n <= max {
			out = append(out, n)
		}
	}
	return out
}

func openCorpus(ctx context.Context, logger *slog.Logger, cs corpusSettings) (*corpus.Corpus, error) {
	_, err := corpus.Ensure(ctx, cs.Dir, corpus.RequiredPackages(cs.StopwordSource), corpus.EnsureOptions{
		IndexURL: cs.IndexURL,
		Offline:  cs.Offline,
		Notify:   packageLogger(logger),
	})
	if err != nil {
		if errors.Is(err, corpus.ErrCorpusUnavailable) {
			logger.Error("corpus data unavailable", slog.String("dir", cs.Dir), slog.Any("error", err))
		}
		return nil, err
	}
	c, err := corpus.Open(cs.Dir, corpus.Options{StopwordSource: cs.StopwordSource})
	if err != nil {
		return nil, err
	}
	stats := c.Lexicon().Stats()
	logger.Debug("corpus loaded",
		slog.Int("words", len(c.Words())),
		slog.Int("stopwords", len(c.Stopwords())),
		slog.Int("lemmas", stats.Lemmas),
		slog.Int("synsets", stats.Synsets),
	)
	return c, nil
}

func packageLogger(logger *slog.Logger) func(corpus.PackageStatus) {
	return func(st corpus.PackageStatus) {
		switch {
		case st.Cached:
			logger.Debug("package already downloaded", slog.String("package", st.Name))
		case st.Downloaded:
			if st.Corrupt {
				logger.Warn("replaced corrupt package", slog.String("package", st.Name))
			}
			logger.Info("downloaded package", slog.String("package", st.Name), slog.Int64("bytes", st.Bytes))
		default:
			logger.Info("downloading package", slog.String("package", st.Name))
		}
	}
}

// recordRun stores the run in the history database. Failures are warnings.
func recordRun(ctx context.Context, logger *slog.Logger, run model.RunSummary) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logger.Warn("failed to open history db", slog.Any("error", err))
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close history db", slog.Any("error", cerr))
		}
	}()
	id, err := st.InsertRun(ctx, run)
	if err != nil {
		logger.Warn("failed to record run", slog.Any("error", err))
		return
	}
	logger.Debug("recorded run", slog.Int64("run_id", id))
}
