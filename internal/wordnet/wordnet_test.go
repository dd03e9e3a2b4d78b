package wordnet

import (
	"errors"
	"testing"
	"testing/fstest"
)

const license = "  1 This software and database is being provided to you, the LICENSEE,\n  2 by Princeton University under the following license.\n"

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"wordnet/index.noun": {Data: []byte(license +
			"bark n 2 1 @ 2 0 13162297 07376731\n" +
			"dog n 2 3 @ ~ + 2 1 02084071 10114209\n" +
			"goose n 1 1 @ 1 0 01855672\n" +
			"run n 1 1 @ 1 0 00189565\n")},
		"wordnet/data.noun": {Data: []byte(license +
			"13162297 20 n 01 bark 0 001 @ 13161254 n 0000 | tough protective covering of the woody stems and roots of trees  \n" +
			"07376731 11 n 01 bark 1 001 @ 07371293 n 0000 | a noise resembling the bark of a dog  \n" +
			"02084071 05 n 03 dog 0 domestic_dog 0 Canis_familiaris 0 001 @ 02083346 n 0000 | a member of the genus Canis that has been domesticated by man since prehistoric times; occurs in many breeds; \"the dog barked all night\"  \n" +
			"10114209 18 n 01 dog 1 001 @ 10113245 n 0000 | a dull unattractive unpleasant girl or woman; \"she got a reputation as a frump\"; \"she's a real dog\"  \n" +
			"01855672 05 n 01 goose 0 001 @ 01846331 n 0000 | web-footed long-necked typically gregarious migratory aquatic birds usually larger and less aquatic than ducks  \n" +
			"00189565 04 n 01 run 0 001 @ 00187526 n 0000 | a score in baseball made by a runner touching all four bases safely  \n")},
		"wordnet/noun.exc": {Data: []byte("geese goose\n")},
		"wordnet/index.verb": {Data: []byte(license +
			"bark v 1 1 @ 1 0 01047745\n" +
			"run v 1 1 @ 1 0 01926311\n")},
		"wordnet/data.verb": {Data: []byte(license +
			"01047745 32 v 01 bark 0 001 @ 01046932 v 0000 01 + 08 00 | speak in an unfriendly tone; \"She barked into the dictaphone\"  \n" +
			"01926311 38 v 01 run 0 001 @ 01904930 v 0000 01 + 02 00 | move fast by using one's feet  \n")},
		"wordnet/verb.exc": {Data: []byte("ran run\n")},
		"wordnet/index.adj": {Data: []byte(license +
			"big a 1 1 & 1 0 01382086\n")},
		"wordnet/data.adj": {Data: []byte(license +
			"01382086 00 a 01 big 0 001 & 01383582 a 0000 | above average in size or number or quantity or magnitude or extent; \"a big house\"  \n")},
		"wordnet/adj.exc": {Data: []byte("bigger big\n")},
		"wordnet/index.adv": {Data: []byte(license)},
		"wordnet/data.adv":  {Data: []byte(license)},
	}
}

func loadTestLexicon(t *testing.T) *Lexicon {
	t.Helper()
	lex, err := Load(testFS(), "wordnet")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return lex
}

func TestFirstDefinitionStripsExamples(t *testing.T) {
	lex := loadTestLexicon(t)
	def, ok := lex.FirstDefinition("dog")
	if !ok {
		t.Fatalf("expected definition for dog")
	}
	expected := "a member of the genus Canis that has been domesticated by man since prehistoric times; occurs in many breeds"
	if def != expected {
		t.Fatalf("unexpected definition: %q", def)
	}
}

func TestSynsetsOrderNounsBeforeVerbs(t *testing.T) {
	lex := loadTestLexicon(t)
	synsets := lex.Synsets("bark")
	if len(synsets) != 3 {
		t.Fatalf("expected 3 synsets, got %d", len(synsets))
	}
	expected := []struct {
		offset string
		pos    POS
	}{
		{"13162297", Noun},
		{"07376731", Noun},
		{"01047745", Verb},
	}
	for i, want := range expected {
		if synsets[i].Offset != want.offset || synsets[i].POS != want.pos {
			t.Fatalf("unexpected synset at %d: %+v", i, synsets[i])
		}
	}
}

func TestMorphyRulesAndExceptions(t *testing.T) {
	lex := loadTestLexicon(t)

	cases := []struct {
		word string
		want string
	}{
		{"dogs", "a member of the genus Canis that has been domesticated by man since prehistoric times; occurs in many breeds"},
		{"geese", "web-footed long-necked typically gregarious migratory aquatic birds usually larger and less aquatic than ducks"},
		{"barked", "speak in an unfriendly tone"},
		{"ran", "move fast by using one's feet"},
		{"bigger", "above average in size or number or quantity or magnitude or extent"},
	}
	for _, tc := range cases {
		def, ok := lex.FirstDefinition(tc.word)
		if !ok {
			t.Fatalf("expected definition for %q", tc.word)
		}
		if def != tc.want {
			t.Fatalf("FirstDefinition(%q) = %q, want %q", tc.word, def, tc.want)
		}
	}
}

func TestFirstDefinitionMissing(t *testing.T) {
	lex := loadTestLexicon(t)
	for _, word := range []string{"", "the", "zzzz"} {
		if def, ok := lex.FirstDefinition(word); ok {
			t.Fatalf("expected no definition for %q, got %q", word, def)
		}
	}
	if synsets := lex.Synsets("the"); len(synsets) != 0 {
		t.Fatalf("expected no synsets, got %d", len(synsets))
	}
}

func TestLoadMissingIndex(t *testing.T) {
	fsys := testFS()
	delete(fsys, "wordnet/index.verb")
	_, err := Load(fsys, "wordnet")
	if !errors.Is(err, ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
}

func TestLoadStats(t *testing.T) {
	lex := loadTestLexicon(t)
	stats := lex.Stats()
	if stats.Lemmas != 5 {
		t.Fatalf("expected 5 lemmas, got %d", stats.Lemmas)
	}
	if stats.Synsets != 9 {
		t.Fatalf("expected 9 synsets, got %d", stats.Synsets)
	}
	if stats.Exceptions != 3 {
		t.Fatalf("expected 3 exceptions, got %d", stats.Exceptions)
	}
}
