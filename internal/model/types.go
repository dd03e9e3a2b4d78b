// Package model defines shared data structures.
package model

import "time"

// Default word length bounds for generated files.
const (
	DefaultMinLength = 3
	DefaultMaxLength = 8
)

// WordEntry is a single output row.
type WordEntry struct {
	Word       string
	Definition string
}

// Options configures one pool/selection pass.
type Options struct {
	TargetLength     *int
	MaxWords         *int
	IncludeStopwords bool
	StopwordPriority bool
	Seed             *int64
	MinLength        int
	MaxLength        int
	ProgressEvery    int
}

// FileResult captures the outcome of writing one CSV file.
type FileResult struct {
	Path            string
	TargetLength    int
	PoolSize        int
	StopwordsInPool int
	Entries         int
	NoDefinition    int
	Rejected        int
}

// RunSummary describes a completed generation run.
type RunSummary struct {
	ID        int64
	StartedAt time.Time
	EndedAt   time.Time
	Preset    string
	Seed      int64
	CorpusDir string
	OutDir    string
	Files     []FileResult
}

// TotalEntries sums entries over all files of the run.
func (r RunSummary) TotalEntries() int {
	total := 0
	for _, f := range r.Files {
		total += f.Entries
	}
	return total
}
