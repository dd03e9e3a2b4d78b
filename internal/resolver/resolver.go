// Package resolver attaches definitions to cleaned words.
package resolver

import "github.com/verte-zerg/wordcsv/internal/model"

// Dictionary answers definition and stopword queries.
type Dictionary interface {
	Definition(word string) (string, bool)
	IsStopword(word string) bool
}

// Resolver applies the keep/drop policy for words without definitions.
type Resolver struct {
	dict Dictionary
}

// New returns a Resolver backed by dict.
func New(dict Dictionary) *Resolver {
	return &Resolver{dict: dict}
}

// Resolve looks up the first-sense definition of word. Stopwords are kept
// with an empty definition when none is found; any other word without a
// definition is dropped.
func (r *Resolver) Resolve(word string) (model.WordEntry, bool) {
	def, ok := r.dict.Definition(word)
	if ok && def != "" {
		return model.WordEntry{Word: word, Definition: def}, true
	}
	if r.dict.IsStopword(word) {
		return model.WordEntry{Word: word, Definition: def}, true
	}
	return model.WordEntry{}, false
}

// IsStopword reports whether word is a stopword.
func (r *Resolver) IsStopword(word string) bool {
	return r.dict.IsStopword(word)
}
