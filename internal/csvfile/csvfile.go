// Package csvfile reads and writes word/definition CSV files.
package csvfile

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/verte-zerg/wordcsv/internal/model"
)

// Header is the mandatory first row.
var Header = []string{"word", "definition"}

// Write encodes entries as CSV with a header row and CRLF line endings.
func Write(w io.Writer, entries []model.WordEntry) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Word, e.Definition}); err != nil {
			return fmt.Errorf("failed to write row %q: %w", e.Word, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// WriteFile writes entries to path through a temp file in the same
// directory, so a failed write leaves any existing file untouched.
func WriteFile(path string, entries []model.WordEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "wordcsv-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := Write(writer, entries); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Read decodes a CSV produced by Write. The header row is required.
func Read(r io.Reader) ([]model.WordEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if header[0] != Header[0] || header[1] != Header[1] {
		return nil, fmt.Errorf("unexpected header %q", header)
	}

	var entries []model.WordEntry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		entries = append(entries, model.WordEntry{Word: record[0], Definition: record[1]})
	}
	return entries, nil
}

// ReadFile reads entries from path.
func ReadFile(path string) ([]model.WordEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return Read(bufio.NewReader(f))
}
