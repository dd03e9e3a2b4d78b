package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/wordcsv/internal/config"
	"github.com/verte-zerg/wordcsv/internal/corpus"
	"github.com/verte-zerg/wordcsv/internal/csvfile"
	"github.com/verte-zerg/wordcsv/internal/preview"
	"github.com/verte-zerg/wordcsv/internal/report"
	"github.com/verte-zerg/wordcsv/internal/store"
)

const defaultHistoryLast = 10

var (
	historyLast  int
	historyFiles bool
)

func newCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Download and verify corpus packages",
		Args:  cobra.NoArgs,
		RunE:  runCorpusCmd,
	}
	addCorpusFlags(cmd)
	return cmd
}

func runCorpusCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cs := resolveCorpusSettings(cmd, fileCfg.Corpus)
	statuses, err := corpus.Ensure(context.Background(), cs.Dir, corpus.RequiredPackages(cs.StopwordSource), corpus.EnsureOptions{
		IndexURL: cs.IndexURL,
		Offline:  cs.Offline,
		Notify:   packageLogger(logger),
	})
	out := cmd.OutOrStdout()
	for _, st := range statuses {
		state := "already downloaded"
		if st.Downloaded {
			state = "downloaded"
		}
		if _, werr := fmt.Fprintf(out, "%-10s %-18s %10s  %s\n", st.Name, state, formatBytes(st.Bytes), st.Path); werr != nil {
			return fmt.Errorf("failed to write output: %w", werr)
		}
	}
	if err != nil {
		return err
	}

	c, err := corpus.Open(cs.Dir, corpus.Options{StopwordSource: cs.StopwordSource})
	if err != nil {
		return err
	}
	stats := c.Lexicon().Stats()
	lines := []string{
		"",
		fmt.Sprintf("words:      %d", len(c.Words())),
		fmt.Sprintf("stopwords:  %d (%s)", len(c.Stopwords()), cs.StopwordSource),
		fmt.Sprintf("lemmas:     %d", stats.Lemmas),
		fmt.Sprintf("synsets:    %d", stats.Synsets),
		fmt.Sprintf("exceptions: %d", stats.Exceptions),
	}
	if _, err := fmt.Fprintln(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "number of runs to show, 0 for all")
	cmd.Flags().BoolVar(&historyFiles, "files", false, "list the files of each run")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	_, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", "error", cerr)
		}
	}()

	runs, err := st.ListRuns(context.Background(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := report.WriteHistory(out, runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !historyFiles {
		return nil
	}
	for _, run := range runs {
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := report.WriteRunFiles(out, run); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <file>",
		Short: "Browse a generated CSV file",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreviewCmd,
	}
}

func runPreviewCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	entries, err := csvfile.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return report.WriteSample(cmd.OutOrStdout(), path, entries)
	}
	program := tea.NewProgram(preview.NewModel(path, entries), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run preview: %w", err)
	}
	return nil
}
