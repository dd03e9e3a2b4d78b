// Package selector builds word pools and samples definition entries from them.
package selector

import (
	"math/rand"
	"sort"
	"time"

	"github.com/verte-zerg/wordcsv/internal/model"
	"github.com/verte-zerg/wordcsv/internal/wordlist"
)

// Resolver turns a cleaned word into an entry, or drops it.
type Resolver interface {
	Resolve(word string) (model.WordEntry, bool)
	IsStopword(word string) bool
}

// Pool is a set of unique lowercase candidate words.
type Pool struct {
	words map[string]struct{}
}

// BuildPool collects alphabetic words from the word list, adds stopwords
// when requested, and applies the length restrictions in opts.
func BuildPool(words, stopwords []string, opts model.Options) Pool {
	keep := lengthFilter(opts)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if !wordlist.IsAlpha(w) {
			continue
		}
		lw := wordlist.Lower(w)
		if keep(lw) {
			set[lw] = struct{}{}
		}
	}
	if opts.IncludeStopwords {
		for _, w := range stopwords {
			if keep(w) {
				set[w] = struct{}{}
			}
		}
	}
	return Pool{words: set}
}

// NewPool builds a pool from words as given.
func NewPool(words ...string) Pool {
	return Pool{words: wordlist.Set(words)}
}

// Len returns the number of words in the pool.
func (p Pool) Len() int {
	return len(p.words)
}

// Contains reports whether word is in the pool.
func (p Pool) Contains(word string) bool {
	_, ok := p.words[word]
	return ok
}

// Sorted returns the pool words in ascending order.
func (p Pool) Sorted() []string {
	out := make([]string, 0, len(p.words))
	for w := range p.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func lengthFilter(opts model.Options) wordlist.FilterFunc {
	if opts.TargetLength != nil {
		return wordlist.ExactLength(*opts.TargetLength)
	}
	return wordlist.LengthFilter(opts.MinLength, opts.MaxLength)
}

// Selection is the result of sampling a pool.
type Selection struct {
	Entries      []model.WordEntry
	Stopwords    int
	Rejected     int
	NoDefinition int
}

// Sampler orders and samples pools with a seeded random source.
type Sampler struct {
	rnd  *rand.Rand
	seed int64
}

// New returns a Sampler seeded with seed, or with the current time when seed
// is nil.
func New(seed *int64) *Sampler {
	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}
	return &Sampler{rnd: rand.New(rand.NewSource(s)), seed: s}
}

// Seed returns the seed in use.
func (s *Sampler) Seed() int64 {
	return s.seed
}

// Order returns the pool words in visiting order. Without priority the whole
// pool is shuffled; with priority every stopword comes first in sorted order,
// followed by the shuffled remaining words.
func (s *Sampler) Order(pool Pool, isStopword func(string) bool, priority bool) []string {
	words := pool.Sorted()
	if !priority {
		s.rnd.Shuffle(len(words), func(i, j int) {
			words[i], words[j] = words[j], words[i]
		})
		return words
	}

	stops := make([]string, 0)
	regular := make([]string, 0, len(words))
	for _, w := range words {
		if isStopword(w) {
			stops = append(stops, w)
		} else {
			regular = append(regular, w)
		}
	}
	s.rnd.Shuffle(len(regular), func(i, j int) {
		regular[i], regular[j] = regular[j], regular[i]
	})
	return append(stops, regular...)
}

// Select walks the pool in Order, cleaning and resolving each word until
// opts.MaxWords entries are accepted. Entries are returned sorted by word.
// progress, when set, is called every opts.ProgressEvery accepted entries.
func (s *Sampler) Select(pool Pool, res Resolver, opts model.Options, progress func(accepted int)) Selection {
	var sel Selection
	seen := make(map[string]struct{})
	keep := lengthFilter(opts)

	for _, word := range s.Order(pool, res.IsStopword, opts.StopwordPriority) {
		if opts.MaxWords != nil && len(sel.Entries) >= *opts.MaxWords {
			break
		}
		cleaned, ok := wordlist.Clean(word)
		if !ok || !keep(cleaned) {
			sel.Rejected++
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		entry, ok := res.Resolve(cleaned)
		if !ok {
			sel.NoDefinition++
			continue
		}
		seen[cleaned] = struct{}{}
		if res.IsStopword(cleaned) {
			sel.Stopwords++
		}
		sel.Entries = append(sel.Entries, entry)
		if progress != nil && opts.ProgressEvery > 0 && len(sel.Entries)%opts.ProgressEvery == 0 {
			progress(len(sel.Entries))
		}
	}

	sort.Slice(sel.Entries, func(i, j int) bool {
		return sel.Entries[i].Word < sel.Entries[j].Word
	})
	return sel
}
