// Package pipeline plans and runs CSV generation jobs.
package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/verte-zerg/wordcsv/internal/model"
	"github.com/verte-zerg/wordcsv/internal/wordlist"
)

// File naming styles for length-bucketed files.
const (
	NamingPlain       = "plain"
	NamingEnhanced    = "enhanced"
	NamingDefinitions = "definitions"
)

// Preset names.
const (
	PresetEnhanced    = "enhanced"
	PresetAll         = "all"
	PresetDefinitions = "definitions"
)

// DefaultPreset is used when no preset is configured.
const DefaultPreset = PresetAll

// UnbucketedFile is the output name when no lengths are requested.
const UnbucketedFile = "word_definitions.csv"

// Settings is the resolved generation configuration.
type Settings struct {
	Preset           string
	Lengths          []int
	MinLength        int
	MaxLength        int
	MaxWords         *int
	IncludeStopwords bool
	StopwordPriority bool
	Seed             *int64
	Naming           string
	Combined         bool
	OutDir           string
	ProgressEvery    int
}

// Job is one output file and the options used to fill it.
type Job struct {
	Path    string
	Options model.Options
}

// PresetSettings returns the settings of a named preset.
func PresetSettings(name string) (Settings, error) {
	s := Settings{
		Preset:           name,
		MinLength:        model.DefaultMinLength,
		MaxLength:        model.DefaultMaxLength,
		IncludeStopwords: true,
		OutDir:           ".",
	}
	switch name {
	case PresetEnhanced:
		s.Lengths = lengthRange(3, 8)
		s.MaxWords = intPtr(300)
		s.Naming = NamingEnhanced
		s.ProgressEvery = 50
	case PresetAll:
		s.Lengths = lengthRange(3, 7)
		s.StopwordPriority = true
		s.Naming = NamingPlain
		s.ProgressEvery = 100
	case PresetDefinitions:
		s.Lengths = lengthRange(3, 8)
		s.MaxWords = intPtr(500)
		s.Naming = NamingDefinitions
		s.ProgressEvery = 50
	default:
		return Settings{}, fmt.Errorf("unknown preset %q (available: %s, %s, %s)", name, PresetAll, PresetEnhanced, PresetDefinitions)
	}
	return s, nil
}

// Validate checks settings for consistency.
func (s Settings) Validate() error {
	if s.MinLength < wordlist.MinWordLength {
		return fmt.Errorf("--min-length must be >= %d", wordlist.MinWordLength)
	}
	if s.MaxLength < s.MinLength {
		return fmt.Errorf("--max-length must be >= --min-length")
	}
	for _, n := range s.Lengths {
		if n < s.MinLength || n > s.MaxLength {
			return fmt.Errorf("--length %d is outside [%d, %d]", n, s.MinLength, s.MaxLength)
		}
	}
	if s.MaxWords != nil && *s.MaxWords <= 0 {
		return fmt.Errorf("--max-words must be > 0")
	}
	switch s.Naming {
	case NamingPlain, NamingEnhanced, NamingDefinitions:
	default:
		return fmt.Errorf("unknown naming %q", s.Naming)
	}
	if s.ProgressEvery < 0 {
		return fmt.Errorf("progress interval must be >= 0")
	}
	return nil
}

// Plan turns settings into ordered jobs.
func Plan(s Settings) ([]Job, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	lengths := uniqueSorted(s.Lengths)
	jobs := make([]Job, 0, len(lengths)+1)
	for _, n := range lengths {
		opts := s.options()
		opts.TargetLength = intPtr(n)
		jobs = append(jobs, Job{
			Path:    filepath.Join(s.OutDir, FileName(s.Naming, n)),
			Options: opts,
		})
	}
	if s.Combined {
		jobs = append(jobs, Job{
			Path:    filepath.Join(s.OutDir, CombinedFileName(s.MinLength, s.MaxLength)),
			Options: s.options(),
		})
	}
	if len(jobs) == 0 {
		jobs = append(jobs, Job{
			Path:    filepath.Join(s.OutDir, UnbucketedFile),
			Options: s.options(),
		})
	}
	return jobs, nil
}

func (s Settings) options() model.Options {
	return model.Options{
		MaxWords:         s.MaxWords,
		IncludeStopwords: s.IncludeStopwords,
		StopwordPriority: s.StopwordPriority,
		Seed:             s.Seed,
		MinLength:        s.MinLength,
		MaxLength:        s.MaxLength,
		ProgressEvery:    s.ProgressEvery,
	}
}

// FileName returns the bucketed file name for length n.
func FileName(naming string, n int) string {
	switch naming {
	case NamingEnhanced:
		return fmt.Sprintf("%d_letter_words_enhanced.csv", n)
	case NamingDefinitions:
		return fmt.Sprintf("%d_letter_words_definitions.csv", n)
	default:
		return fmt.Sprintf("%d_letter_words.csv", n)
	}
}

// CombinedFileName returns the name of the all-lengths file.
func CombinedFileName(min, max int) string {
	return fmt.Sprintf("all_words_%d_to_%d_letters.csv", min, max)
}

func lengthRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, n)
	}
	return out
}

func uniqueSorted(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	out := make([]int, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func intPtr(v int) *int {
	return &v
}
