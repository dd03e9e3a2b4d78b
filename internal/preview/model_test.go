package preview

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/wordcsv/internal/model"
)

func fixtureEntries() []model.WordEntry {
	return []model.WordEntry{
		{Word: "bark", Definition: "tough protective covering"},
		{Word: "cat", Definition: "feline mammal"},
		{Word: "catalog", Definition: "a complete list"},
		{Word: "dog", Definition: "a domesticated canid"},
	}
}

func words(entries []model.WordEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Word
	}
	return out
}

func equalWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterPrefix(t *testing.T) {
	entries := fixtureEntries()
	cases := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"bark", "cat", "catalog", "dog"}},
		{"cat", []string{"cat", "catalog"}},
		{"d", []string{"dog"}},
		{"zz", []string{}},
	}
	for _, tc := range cases {
		got := words(FilterPrefix(entries, tc.prefix))
		if !equalWords(got, tc.want) {
			t.Fatalf("FilterPrefix(%q) = %v, want %v", tc.prefix, got, tc.want)
		}
	}
}

func TestFilterPrefixUnsorted(t *testing.T) {
	entries := []model.WordEntry{{Word: "dog"}, {Word: "cat"}, {Word: "dot"}}
	got := words(FilterPrefix(entries, "do"))
	if !equalWords(got, []string{"dog", "dot"}) {
		t.Fatalf("unexpected unsorted filter result: %v", got)
	}
}

func TestModelIncrementalFilter(t *testing.T) {
	m := NewModel("out/3_letter_words.csv", fixtureEntries())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	if len(m.Visible()) != 4 {
		t.Fatalf("expected all entries visible, got %d", len(m.Visible()))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	if !m.filterMode {
		t.Fatalf("expected filter mode after /")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("C")})
	if got := words(m.Visible()); !equalWords(got, []string{"cat", "catalog"}) {
		t.Fatalf("unexpected entries after typing: %v", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if got := words(m.Visible()); !equalWords(got, []string{"catalog"}) {
		t.Fatalf("unexpected entries after narrowing: %v", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode {
		t.Fatalf("expected filter mode to end on enter")
	}
	if len(m.Visible()) != 1 {
		t.Fatalf("expected filter to persist after enter")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if len(m.Visible()) != 4 {
		t.Fatalf("expected esc to clear the filter, got %d", len(m.Visible()))
	}
	if m.View() == "" {
		t.Fatalf("expected non-empty view")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel("x.csv", nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
