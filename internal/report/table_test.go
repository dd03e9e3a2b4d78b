package report

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"File", "Pool", "Entries"}
	rows := [][]string{
		{"3_letter_words.csv", "120", "98"},
		{"all.csv", "7", "1200"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "File               Pool Entries" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "3_letter_words.csv  120      98" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "all.csv               7    1200" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 60, "short"},
		{"abcdef", 3, "abc..."},
		{"abcdef", 6, "abcdef"},
		{"abcdef", 0, "abcdef"},
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.width); got != tc.want {
			t.Fatalf("Truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
