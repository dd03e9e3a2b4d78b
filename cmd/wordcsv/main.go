// Package main provides the CLI entrypoint for wordcsv.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordcsv/internal/app"
	"github.com/verte-zerg/wordcsv/internal/config"
	"github.com/verte-zerg/wordcsv/internal/corpus"
	"github.com/verte-zerg/wordcsv/internal/model"
	"github.com/verte-zerg/wordcsv/internal/pipeline"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

var (
	logLevel  string
	logFormat string

	corpusDir            string
	corpusOffline        bool
	corpusStopwordSource string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordcsv",
		Short:         "Generate word/definition CSV files from the NLTK corpora",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGenerateCmd,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", defaultLogFormat, "log format (text, json)")
	addGenerateFlags(rootCmd)

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newCorpusCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func addCorpusFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&corpusDir, "corpus-dir", config.DefaultCorpusDir(), "NLTK data directory")
	cmd.Flags().BoolVar(&corpusOffline, "offline", false, "never download missing corpus packages")
	cmd.Flags().StringVar(&corpusStopwordSource, "stopword-source", corpus.StopwordsNLTK, "stopword list (nltk, snowball)")
}

// loadConfig reads the config file and builds the process logger from it.
func loadConfig(cmd *cobra.Command) (config.FileConfig, *slog.Logger, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)
	logger := app.NewLogger(cmd.ErrOrStderr(), logLevel, logFormat)
	return fileCfg, logger, nil
}

type corpusSettings struct {
	Dir            string
	IndexURL       string
	Offline        bool
	StopwordSource string
}

func resolveCorpusSettings(cmd *cobra.Command, cfg config.CorpusConfig) corpusSettings {
	applyConfig(cmd, "corpus-dir", &corpusDir, cfg.Dir)
	applyConfig(cmd, "offline", &corpusOffline, cfg.Offline)
	applyConfig(cmd, "stopword-source", &corpusStopwordSource, cfg.StopwordSource)
	s := corpusSettings{
		Dir:            corpusDir,
		IndexURL:       corpus.DefaultIndexURL,
		Offline:        corpusOffline,
		StopwordSource: corpusStopwordSource,
	}
	if cfg.IndexURL != nil {
		s.IndexURL = *cfg.IndexURL
	}
	return s
}

// applyConfig copies a config value into target unless the flag was set.
func applyConfig[T any](cmd *cobra.Command, name string, target, value *T) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordcsv configuration
# Uncomment a value to enable it. CLI flags override config values.

[generate]
# preset = %q            # all, enhanced or definitions
# lengths = [3, 4, 5]     # One file per length; [] writes a single unbucketed file
# min-length = %d          # Shortest accepted word
# max-length = %d          # Longest accepted word
# max-words = 300         # Entries per file; 0 means no cap
# stopwords = true        # Merge stopwords into the pool
# stopword-priority = false # Place stopwords ahead of shuffled words
# seed = 42               # Fixed random seed
# naming = "plain"        # plain, enhanced or definitions
# combined = false        # Also write all_words_{min}_to_{max}_letters.csv
# out = "."               # Output directory
# history = true          # Record runs in the history database

[corpus]
# dir = %q
# index-url = %q
# offline = false
# stopword-source = %q   # nltk or snowball

[log]
# level = %q
# format = %q
`,
		pipeline.DefaultPreset,
		model.DefaultMinLength,
		model.DefaultMaxLength,
		config.DefaultCorpusDir(),
		corpus.DefaultIndexURL,
		corpus.StopwordsNLTK,
		defaultLogLevel,
		defaultLogFormat,
	)
}
