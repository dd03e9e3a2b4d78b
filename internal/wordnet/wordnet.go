// Package wordnet reads the WordNet 3.0 database files (index.*, data.*,
// *.exc) and answers sense lookups keyed by word.
//
// Lookups follow the ordering of NLTK's wn.synsets: parts of speech in the
// order noun, verb, adjective, adverb; within a part of speech, base forms in
// morphy order; within a form, synset offsets in index-file order. WordNet
// orders those offsets by tagged sense frequency, so the first synset is taken
// to be the most common sense.
package wordnet

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// POS is a WordNet part-of-speech tag.
type POS byte

// Parts of speech as used in WordNet file names and index records.
const (
	Noun      POS = 'n'
	Verb      POS = 'v'
	Adjective POS = 'a'
	Adverb    POS = 'r'
)

// Order is the part-of-speech order used by Synsets.
var Order = []POS{Noun, Verb, Adjective, Adverb}

var fileNames = map[POS]string{
	Noun:      "noun",
	Verb:      "verb",
	Adjective: "adj",
	Adverb:    "adv",
}

var quotedExample = regexp.MustCompile(`"[^"]*"`)

// ErrMissingFile reports that a required database file is absent.
var ErrMissingFile = errors.New("wordnet: missing database file")

// Synset is one word sense.
type Synset struct {
	Offset     string
	POS        POS
	Definition string
}

// Stats holds loader statistics for logging.
type Stats struct {
	Lemmas     int
	Synsets    int
	Exceptions int
}

// Lexicon is an in-memory WordNet database.
type Lexicon struct {
	index      map[string]map[POS][]string
	glosses    map[POS]map[string]string
	exceptions map[POS]map[string][]string
	stats      Stats
}

// Load reads the database files found under root in fsys. Exception lists
// are optional; index and data files for every part of speech are required.
func Load(fsys fs.FS, root string) (*Lexicon, error) {
	lex := &Lexicon{
		index:      make(map[string]map[POS][]string),
		glosses:    make(map[POS]map[string]string),
		exceptions: make(map[POS]map[string][]string),
	}
	for _, pos := range Order {
		name := fileNames[pos]
		if err := readFile(fsys, path.Join(root, "index."+name), true, lex.readIndex); err != nil {
			return nil, err
		}
		glosses := make(map[string]string)
		lex.glosses[pos] = glosses
		if err := readFile(fsys, path.Join(root, "data."+name), true, func(r io.Reader) error {
			return readData(r, glosses, &lex.stats)
		}); err != nil {
			return nil, err
		}
		exc := make(map[string][]string)
		lex.exceptions[pos] = exc
		if err := readFile(fsys, path.Join(root, name+".exc"), false, func(r io.Reader) error {
			return readExceptions(r, exc, &lex.stats)
		}); err != nil {
			return nil, err
		}
	}
	lex.stats.Lemmas = len(lex.index)
	return lex, nil
}

// Stats returns loader statistics.
func (l *Lexicon) Stats() Stats {
	return l.stats
}

// Synsets returns every sense of word in lookup order.
func (l *Lexicon) Synsets(word string) []Synset {
	lemma := strings.ToLower(strings.TrimSpace(word))
	if lemma == "" {
		return nil
	}
	var out []Synset
	for _, pos := range Order {
		for _, form := range l.Morphy(lemma, pos) {
			for _, offset := range l.index[form][pos] {
				out = append(out, Synset{
					Offset:     offset,
					POS:        pos,
					Definition: l.glosses[pos][offset],
				})
			}
		}
	}
	return out
}

// FirstDefinition returns the definition of the first sense of word.
func (l *Lexicon) FirstDefinition(word string) (string, bool) {
	lemma := strings.ToLower(strings.TrimSpace(word))
	if lemma == "" {
		return "", false
	}
	for _, pos := range Order {
		for _, form := range l.Morphy(lemma, pos) {
			offsets := l.index[form][pos]
			if len(offsets) == 0 {
				continue
			}
			return l.glosses[pos][offsets[0]], true
		}
	}
	return "", false
}

func (l *Lexicon) has(form string, pos POS) bool {
	_, ok := l.index[form][pos]
	return ok
}

func readFile(fsys fs.FS, name string, required bool, parse func(io.Reader) error) error {
	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if !required {
				return nil
			}
			return fmt.Errorf("%w: %s", ErrMissingFile, name)
		}
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer func() {
		_ = f.Close()
	}()
	if err := parse(f); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}

// readIndex parses index records:
//
//	lemma pos synset_cnt p_cnt [ptr_symbol...] sense_cnt tagsense_cnt offset...
func (l *Lexicon) readIndex(r io.Reader) error {
	scanner := newScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" || strings.HasPrefix(text, " ") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 6 {
			return fmt.Errorf("line %d: too few fields", line)
		}
		lemma := fields[0]
		if len(fields[1]) != 1 {
			return fmt.Errorf("line %d: bad pos %q", line, fields[1])
		}
		pos := POS(fields[1][0])
		synsetCount, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("line %d: bad synset count: %w", line, err)
		}
		pointerCount, err := strconv.Atoi(fields[3])
		if err != nil {
			return fmt.Errorf("line %d: bad pointer count: %w", line, err)
		}
		start := 4 + pointerCount + 2
		if start+synsetCount > len(fields) {
			return fmt.Errorf("line %d: expected %d offsets", line, synsetCount)
		}
		offsets := make([]string, synsetCount)
		copy(offsets, fields[start:start+synsetCount])

		byPOS, ok := l.index[lemma]
		if !ok {
			byPOS = make(map[POS][]string, 1)
			l.index[lemma] = byPOS
		}
		byPOS[pos] = offsets
	}
	return scanner.Err()
}

// readData collects the gloss definition of each synset record.
func readData(r io.Reader, glosses map[string]string, stats *Stats) error {
	scanner := newScanner(r)
	for scanner.Scan() {
		text := scanner.Text()
		if text == "" || strings.HasPrefix(text, " ") {
			continue
		}
		offset, _, ok := strings.Cut(text, " ")
		if !ok {
			continue
		}
		_, gloss, ok := strings.Cut(text, "|")
		if !ok {
			glosses[offset] = ""
			stats.Synsets++
			continue
		}
		glosses[offset] = Definition(gloss)
		stats.Synsets++
	}
	return scanner.Err()
}

// Definition strips quoted usage examples from a gloss.
func Definition(gloss string) string {
	def := strings.TrimSpace(quotedExample.ReplaceAllString(gloss, ""))
	return strings.Trim(def, "; ")
}

func readExceptions(r io.Reader, exc map[string][]string, stats *Stats) error {
	scanner := newScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		exc[fields[0]] = append(exc[fields[0]], fields[1:]...)
		stats.Exceptions++
	}
	return scanner.Err()
}
