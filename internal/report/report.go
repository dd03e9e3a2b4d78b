package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/wordcsv/internal/model"
)

// SampleRows and SampleWidth bound the sample printout.
const (
	SampleRows  = 10
	SampleWidth = 60
)

// WriteSummary prints the per-file results of a finished run.
func WriteSummary(w io.Writer, run model.RunSummary) error {
	files := len(run.Files)
	noun := "files"
	if files == 1 {
		noun = "file"
	}
	lines := []string{
		fmt.Sprintf("Generated %d %s with %d entries (preset %s, seed %d) in %s",
			files, noun, run.TotalEntries(), run.Preset, run.Seed, run.EndedAt.Sub(run.StartedAt).Round(time.Millisecond)),
	}
	if files > 0 {
		lines = append(lines, "")
		lines = append(lines, fileTable(run.Files, "  ")...)
	}
	return writeLines(w, lines)
}

// WriteHistory prints recorded runs, newest first.
func WriteHistory(w io.Writer, runs []model.RunSummary) error {
	if len(runs) == 0 {
		return writeLines(w, []string{"No runs recorded."})
	}
	headers := []string{"ID", "Finished", "Preset", "Seed", "Files", "Entries", "Output"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(run.ID, 10),
			run.EndedAt.Local().Format("2006-01-02 15:04:05"),
			run.Preset,
			strconv.FormatInt(run.Seed, 10),
			strconv.Itoa(len(run.Files)),
			strconv.Itoa(run.TotalEntries()),
			run.OutDir,
		})
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 5: true}
	return writeLines(w, formatTable(headers, rows, rightAlign))
}

// WriteRunFiles prints the files of one recorded run.
func WriteRunFiles(w io.Writer, run model.RunSummary) error {
	lines := []string{fmt.Sprintf("Run %d (%s):", run.ID, run.Preset)}
	lines = append(lines, fileTable(run.Files, "  ")...)
	return writeLines(w, lines)
}

// WriteSample prints the first SampleRows entries of a file with long
// definitions truncated.
func WriteSample(w io.Writer, name string, entries []model.WordEntry) error {
	lines := []string{fmt.Sprintf("Sample entries from %s:", filepath.Base(name))}
	if len(entries) == 0 {
		lines = append(lines, "  (no entries)")
	}
	for i, e := range entries {
		if i >= SampleRows {
			break
		}
		lines = append(lines, fmt.Sprintf("  %s (%d letters): %s",
			e.Word, utf8.RuneCountInString(e.Word), Truncate(e.Definition, SampleWidth)))
	}
	return writeLines(w, lines)
}

func fileTable(files []model.FileResult, indent string) []string {
	headers := []string{"File", "Length", "Pool", "Stopwords", "Entries", "No definition"}
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		length := "-"
		if f.TargetLength > 0 {
			length = strconv.Itoa(f.TargetLength)
		}
		rows = append(rows, []string{
			filepath.Base(f.Path),
			length,
			strconv.Itoa(f.PoolSize),
			strconv.Itoa(f.StopwordsInPool),
			strconv.Itoa(f.Entries),
			strconv.Itoa(f.NoDefinition),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true})
	for i := range lines {
		lines[i] = indent + lines[i]
	}
	return lines
}

func writeLines(w io.Writer, lines []string) error {
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
