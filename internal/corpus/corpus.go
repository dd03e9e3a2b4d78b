// Package corpus provides access to the NLTK lexical data packages: the
// flat word list, the English stopword list and the WordNet database.
package corpus

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kljensen/snowball/english"

	"github.com/verte-zerg/wordcsv/internal/wordlist"
	"github.com/verte-zerg/wordcsv/internal/wordnet"
)

// ErrCorpusUnavailable reports that corpus data could not be found, read or
// downloaded.
var ErrCorpusUnavailable = errors.New("corpus unavailable")

// Package names as published in the NLTK data index.
const (
	PackageWords     = "words"
	PackageStopwords = "stopwords"
	PackageWordNet   = "wordnet"
)

// Stopword sources.
const (
	StopwordsNLTK     = "nltk"
	StopwordsSnowball = "snowball"
)

const stopwordLang = "english"

// Options selects how the corpus is assembled.
type Options struct {
	StopwordSource string
}

// Corpus holds the loaded word list, stopwords and lexical database.
type Corpus struct {
	words     []string
	stopwords []string
	stopSet   map[string]struct{}
	lexicon   *wordnet.Lexicon
}

// RequiredPackages lists the packages Open needs for the stopword source.
func RequiredPackages(stopwordSource string) []string {
	if normalizeSource(stopwordSource) == StopwordsSnowball {
		return []string{PackageWords, PackageWordNet}
	}
	return []string{PackageWords, PackageStopwords, PackageWordNet}
}

// PackagePath returns the archive path of a package inside a data directory.
func PackagePath(dir, name string) string {
	return filepath.Join(dir, "corpora", name+".zip")
}

// Open loads all required packages from dir.
func Open(dir string, opts Options) (*Corpus, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: corpus directory is required", ErrCorpusUnavailable)
	}
	source := normalizeSource(opts.StopwordSource)
	if source != StopwordsNLTK && source != StopwordsSnowball {
		return nil, fmt.Errorf("unknown stopword source %q", opts.StopwordSource)
	}

	c := &Corpus{}
	err := withPackage(dir, PackageWords, func(fsys fs.FS) error {
		words, err := readWordFiles(fsys, PackageWords)
		if err != nil {
			return err
		}
		c.words = words
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch source {
	case StopwordsSnowball:
		c.stopwords = snowballStopwords(c.words)
	default:
		err = withPackage(dir, PackageStopwords, func(fsys fs.FS) error {
			words, err := readWordFile(fsys, path.Join(PackageStopwords, stopwordLang))
			if err != nil {
				return err
			}
			c.stopwords = words
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	c.stopSet = wordlist.Set(c.stopwords)

	err = withPackage(dir, PackageWordNet, func(fsys fs.FS) error {
		lex, err := wordnet.Load(fsys, PackageWordNet)
		if err != nil {
			return err
		}
		c.lexicon = lex
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// New assembles a corpus from already loaded parts.
func New(words, stopwords []string, lexicon *wordnet.Lexicon) *Corpus {
	return &Corpus{
		words:     words,
		stopwords: stopwords,
		stopSet:   wordlist.Set(stopwords),
		lexicon:   lexicon,
	}
}

// Words returns the flat word list in file order.
func (c *Corpus) Words() []string {
	return c.words
}

// Stopwords returns the English stopword list.
func (c *Corpus) Stopwords() []string {
	return c.stopwords
}

// IsStopword reports whether word is in the stopword list.
func (c *Corpus) IsStopword(word string) bool {
	_, ok := c.stopSet[word]
	return ok
}

// Definition returns the first-sense definition of word.
func (c *Corpus) Definition(word string) (string, bool) {
	if c.lexicon == nil {
		return "", false
	}
	return c.lexicon.FirstDefinition(word)
}

// Lexicon exposes the underlying WordNet database.
func (c *Corpus) Lexicon() *wordnet.Lexicon {
	return c.lexicon
}

func withPackage(dir, name string, fn func(fs.FS) error) error {
	archive := PackagePath(dir, name)
	reader, err := zip.OpenReader(archive)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: package %s not found at %s", ErrCorpusUnavailable, name, archive)
		}
		return fmt.Errorf("%w: failed to open package %s: %v", ErrCorpusUnavailable, name, err)
	}
	defer func() {
		_ = reader.Close()
	}()
	if err := fn(&reader.Reader); err != nil {
		return fmt.Errorf("%w: failed to read package %s: %v", ErrCorpusUnavailable, name, err)
	}
	return nil
}

// readWordFiles reads every word file of a word-list package, skipping the
// README, in file name order.
func readWordFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == "README" || strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no word files in %s", dir)
	}
	sort.Strings(names)

	var words []string
	for _, name := range names {
		part, err := readWordFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		words = append(words, part...)
	}
	return words, nil
}

func readWordFile(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	words, err := wordlist.ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%s is empty", name)
	}
	return words, nil
}

func snowballStopwords(words []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range words {
		lw := wordlist.Lower(w)
		if _, ok := seen[lw]; ok {
			continue
		}
		if english.IsStopWord(lw) {
			seen[lw] = struct{}{}
			out = append(out, lw)
		}
	}
	sort.Strings(out)
	return out
}

func normalizeSource(source string) string {
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		return StopwordsNLTK
	}
	return source
}
