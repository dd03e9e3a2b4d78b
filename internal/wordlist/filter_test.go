package wordlist

import "testing"

func TestCleanAcceptsAlphabeticWords(t *testing.T) {
	cases := map[string]string{
		"hello":     "hello",
		"  Apple\n": "apple",
		"CAT":       "cat",
		"résumé":    "résumé",
	}
	for raw, want := range cases {
		got, ok := Clean(raw)
		if !ok {
			t.Fatalf("expected %q to be accepted", raw)
		}
		if got != want {
			t.Fatalf("Clean(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestCleanRejects(t *testing.T) {
	for _, raw := range []string{"", "a", "an", "  of ", "co-op", "don't", "abc1", "two words"} {
		if got, ok := Clean(raw); ok {
			t.Fatalf("expected %q to be rejected, got %q", raw, got)
		}
	}
}

func TestCleanCountsRunesNotBytes(t *testing.T) {
	// Decomposed "e" + combining acute composes to a single rune.
	got, ok := Clean("cafe\u0301")
	if !ok {
		t.Fatalf("expected composed word to be accepted")
	}
	if got != "caf\u00e9" {
		t.Fatalf("unexpected normalized word: %q", got)
	}
	if !ExactLength(4)(got) {
		t.Fatalf("expected %q to have 4 runes", got)
	}
}

func TestLengthFilter(t *testing.T) {
	keep := LengthFilter(3, 5)
	if keep("ab") || !keep("abc") || !keep("abcde") || keep("abcdef") {
		t.Fatalf("unexpected length filter results")
	}
	unbounded := LengthFilter(3, 0)
	if !unbounded("abcdefghijkl") {
		t.Fatalf("expected zero max to disable the upper bound")
	}
}
