// Package preview provides the Bubble Tea browser for generated CSV files.
package preview

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wordcsv/internal/model"
	"github.com/verte-zerg/wordcsv/internal/wordlist"
)

const (
	minWordColumn = 4
	maxWordColumn = 24
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea CSV browser.
type Model struct {
	name     string
	entries  []model.WordEntry
	filtered []model.WordEntry

	table  table.Model
	filter textinput.Model
	prefix string

	filterMode bool
	width      int
	height     int
}

// NewModel constructs a browser over entries read from the named file.
func NewModel(name string, entries []model.WordEntry) *Model {
	m := &Model{
		name:    filepath.Base(name),
		entries: entries,
	}
	m.filter = textinput.New()
	m.filter.Prompt = "Prefix: "
	m.filter.CharLimit = 0
	m.filter.Cursor.SetMode(cursor.CursorBlink)
	m.table = table.New(
		table.WithColumns(columns(entries, 80)),
		table.WithFocused(true),
		table.WithHeight(1),
	)
	m.table.SetStyles(tableStyles())
	m.applyPrefix("")
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "/":
			m.filterMode = true
			m.filter.SetValue(m.prefix)
			m.filter.CursorEnd()
			return m, m.filter.Focus()
		case "g", "home":
			m.table.GotoTop()
			return m, nil
		case "G", "end":
			m.table.GotoBottom()
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	parts := []string{
		titleStyle.Render(m.name),
		headerStyle.Render(m.status()),
		m.table.View(),
		m.renderFooter(),
	}
	return strings.Join(parts, "\n")
}

// Visible returns the entries currently shown.
func (m *Model) Visible() []model.WordEntry {
	return m.filtered
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filter.Blur()
		m.applyPrefix("")
		return m, nil
	case tea.KeyEnter:
		m.filterMode = false
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyPrefix(m.filter.Value())
	return m, cmd
}

func (m *Model) applyPrefix(prefix string) {
	m.prefix = wordlist.Lower(strings.TrimSpace(prefix))
	m.filtered = FilterPrefix(m.entries, m.prefix)
	rows := make([]table.Row, len(m.filtered))
	for i, e := range m.filtered {
		rows[i] = table.Row{e.Word, e.Definition}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *Model) updateLayout() {
	m.table.SetColumns(columns(m.entries, m.width))
	m.table.SetWidth(m.width)
	// Title box (3), status (1), footer (1).
	m.table.SetHeight(maxInt(1, m.height-5))
}

func (m *Model) status() string {
	if m.prefix == "" {
		return fmt.Sprintf("%d entries", len(m.entries))
	}
	return fmt.Sprintf("%d of %d entries matching %q", len(m.filtered), len(m.entries), m.prefix)
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.filter.View()
	}
	return mutedStyle.Render("/ filter  g/G top/bottom  q quit")
}

// FilterPrefix returns the entries whose word starts with prefix. An empty
// prefix returns every entry. Entries stay in file order.
func FilterPrefix(entries []model.WordEntry, prefix string) []model.WordEntry {
	if prefix == "" {
		return entries
	}
	// Generated files are sorted by word, so the range can be found by search.
	if sort.SliceIsSorted(entries, func(i, j int) bool { return entries[i].Word < entries[j].Word }) {
		start := sort.Search(len(entries), func(i int) bool { return entries[i].Word >= prefix })
		end := start
		for end < len(entries) && strings.HasPrefix(entries[end].Word, prefix) {
			end++
		}
		return entries[start:end]
	}
	var out []model.WordEntry
	for _, e := range entries {
		if strings.HasPrefix(e.Word, prefix) {
			out = append(out, e)
		}
	}
	return out
}

func columns(entries []model.WordEntry, width int) []table.Column {
	wordWidth := minWordColumn
	for _, e := range entries {
		if w := runewidth.StringWidth(e.Word); w > wordWidth {
			wordWidth = w
		}
	}
	if wordWidth > maxWordColumn {
		wordWidth = maxWordColumn
	}
	defWidth := width - wordWidth - 2
	if defWidth < 10 {
		defWidth = 10
	}
	return []table.Column{
		{Title: "Word", Width: wordWidth},
		{Title: "Definition", Width: defWidth},
	}
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
