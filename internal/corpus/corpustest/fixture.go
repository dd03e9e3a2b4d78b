// Package corpustest builds small on-disk corpus fixtures for tests.
package corpustest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// Words is the fixture word list, split like the NLTK package files.
var Words = map[string][]string{
	"en":       {"cat", "dog", "The", "Apple", "a", "co-op", "zzzq", "running", "bark", "and", "kitten", "ox"},
	"en-basic": {"cat", "big", "run"},
}

// Stopwords is the fixture English stopword list.
var Stopwords = []string{"a", "an", "and", "for", "of", "the", "were"}

// Definitions maps fixture lemmas to their first-sense gloss.
var Definitions = map[string]string{
	"apple":  "fruit with red or yellow or green skin and sweet to tart crisp whitish flesh",
	"bark":   "tough protective covering of the woody stems and roots of trees",
	"big":    "above average in size or number or quantity or magnitude or extent",
	"cat":    "feline mammal usually having thick soft fur and no ability to roar",
	"dog":    "a member of the genus Canis that has been domesticated by man since prehistoric times; occurs in many breeds",
	"kitten": "young domestic cat",
	"run":    "a score in baseball made by a runner touching all four bases safely",
}

const license = "  1 This software and database is being provided to you, the LICENSEE,\n"

// WordNetFiles returns the fixture database files keyed by archive path.
func WordNetFiles() map[string][]byte {
	return map[string][]byte{
		"wordnet/index.noun": []byte(license +
			"apple n 1 1 @ 1 0 07739125\n" +
			"bark n 1 1 @ 1 0 13162297\n" +
			"cat n 1 1 @ 1 0 02121620\n" +
			"dog n 1 1 @ 1 0 02084071\n" +
			"kitten n 1 1 @ 1 0 02125311\n" +
			"run n 1 1 @ 1 0 00189565\n"),
		"wordnet/data.noun": []byte(license +
			"07739125 13 n 01 apple 0 001 @ 07705931 n 0000 | " + Definitions["apple"] + "  \n" +
			"13162297 20 n 01 bark 0 001 @ 13161254 n 0000 | " + Definitions["bark"] + "  \n" +
			"02121620 05 n 01 cat 0 001 @ 02120997 n 0000 | " + Definitions["cat"] + "; \"cats are carnivores\"  \n" +
			"02084071 05 n 01 dog 0 001 @ 02083346 n 0000 | " + Definitions["dog"] + "; \"the dog barked all night\"  \n" +
			"02125311 05 n 01 kitten 0 001 @ 02121620 n 0000 | " + Definitions["kitten"] + "  \n" +
			"00189565 04 n 01 run 0 001 @ 00187526 n 0000 | " + Definitions["run"] + "  \n"),
		"wordnet/noun.exc":   []byte(""),
		"wordnet/index.verb": []byte(license),
		"wordnet/data.verb":  []byte(license),
		"wordnet/index.adj": []byte(license +
			"big a 1 1 & 1 0 01382086\n"),
		"wordnet/data.adj": []byte(license +
			"01382086 00 a 01 big 0 001 & 01383582 a 0000 | " + Definitions["big"] + "; \"a big house\"  \n"),
		"wordnet/index.adv": []byte(license),
		"wordnet/data.adv":  []byte(license),
	}
}

// Write creates words.zip, stopwords.zip and wordnet.zip under dir/corpora.
func Write(t *testing.T, dir string) {
	t.Helper()

	wordFiles := map[string][]byte{"words/README": []byte("Word lists\n")}
	for name, words := range Words {
		wordFiles["words/"+name] = lines(words)
	}
	WriteZip(t, filepath.Join(dir, "corpora", "words.zip"), wordFiles)
	WriteZip(t, filepath.Join(dir, "corpora", "stopwords.zip"), map[string][]byte{
		"stopwords/README":  []byte("Stopwords Corpus\n"),
		"stopwords/english": lines(Stopwords),
		"stopwords/french":  lines([]string{"le", "la"}),
	})
	WriteZip(t, filepath.Join(dir, "corpora", "wordnet.zip"), WordNetFiles())
}

// WriteZip writes files into a new zip archive at path.
func WriteZip(t *testing.T, path string, files map[string][]byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create fixture dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture zip: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	zw := zip.NewWriter(f)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
}

func lines(words []string) []byte {
	var out []byte
	for _, w := range words {
		out = append(out, w...)
		out = append(out, '\n')
	}
	return out
}
