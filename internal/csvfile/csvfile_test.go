package csvfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/wordcsv/internal/model"
)

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	entries := []model.WordEntry{
		{Word: "and", Definition: ""},
		{Word: "cat", Definition: "feline mammal; \"cats purr\", often"},
		{Word: "dog", Definition: "a domesticated canine"},
	}
	if err := Write(&buf, entries); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	expected := "word,definition\r\n" +
		"and,\r\n" +
		"cat,\"feline mammal; \"\"cats purr\"\", often\"\r\n" +
		"dog,a domesticated canine\r\n"
	if buf.String() != expected {
		t.Fatalf("unexpected csv:\n%q\nwant:\n%q", buf.String(), expected)
	}
}

func TestWriteFileEmptyHasHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "3_letter_words.csv")
	if err := WriteFile(path, nil); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "word,definition\r\n" {
		t.Fatalf("unexpected contents: %q", string(data))
	}
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "wordcsv-*.csv"))
	if len(matches) != 0 {
		t.Fatalf("expected temp files to be cleaned up, found %v", matches)
	}
}

func TestReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	entries := []model.WordEntry{
		{Word: "big", Definition: "above average, in size"},
		{Word: "the", Definition: ""},
	}
	if err := WriteFile(path, entries); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(got))
	}
	for i := range entries {
		if got[i] != entries[i] {
			t.Fatalf("entry %d: got %+v, want %+v", i, got[i], entries[i])
		}
	}
}

func TestReadRejectsBadHeader(t *testing.T) {
	if _, err := Read(strings.NewReader("lemma,gloss\r\ncat,x\r\n")); err == nil {
		t.Fatalf("expected error for unexpected header")
	}
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestWriteFileFailedReplaceKeepsDestination(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "4_letter_words.csv")
	// A non-empty directory at the destination makes the final rename fail.
	keep := filepath.Join(path, "keep.txt")
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(keep, []byte("previous"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	err := WriteFile(path, []model.WordEntry{{Word: "bark", Definition: "tree covering"}})
	if err == nil {
		t.Fatalf("expected error when destination cannot be replaced")
	}
	if n := strings.Count(err.Error(), path); n != 1 {
		t.Fatalf("expected path once in error, got %d: %v", n, err)
	}
	data, err := os.ReadFile(keep)
	if err != nil || string(data) != "previous" {
		t.Fatalf("expected destination untouched, got %q (%v)", data, err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "wordcsv-*.csv"))
	if len(matches) != 0 {
		t.Fatalf("expected temp files to be cleaned up, found %v", matches)
	}
}

func TestWriteFileReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "3_letter_words.csv")
	if err := os.WriteFile(path, []byte("stale"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := WriteFile(path, []model.WordEntry{{Word: "cat", Definition: "feline"}}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "word,definition\r\ncat,feline\r\n" {
		t.Fatalf("unexpected contents: %q", data)
	}
}
