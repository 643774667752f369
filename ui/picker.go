package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	matchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// Candidate is one row of the picker: a path and the matched rune offsets
// to highlight.
type Candidate struct {
	Path    string
	Matches []int
}

// PickerModel lets the user narrow a ranked list of directories and choose one.
type PickerModel struct {
	input    textinput.Model
	paths    []string
	visible  []Candidate
	cursor   int
	offset   int
	selected string
	done     bool
	width    int
	height   int
}

// NewPicker returns a picker over paths, which are expected best first.
func NewPicker(paths []string) PickerModel {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Prompt = "> "
	ti.CharLimit = 156
	ti.Width = 40
	ti.Focus()

	m := PickerModel{
		input:  ti,
		paths:  paths,
		height: 20,
	}
	m.refilter()
	return m
}

// Selected returns the chosen path, or "" if the picker was cancelled.
func (m PickerModel) Selected() string {
	return m.selected
}

// Visible returns the rows that pass the current filter, in display order.
func (m PickerModel) Visible() []Candidate {
	return m.visible
}

func (m PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height - 3
		if m.height < 1 {
			m.height = 1
		}
		m.input.Width = msg.Width - 4
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit
		case "enter":
			if len(m.visible) > 0 {
				m.selected = m.visible[m.cursor].Path
			}
			m.done = true
			return m, tea.Quit
		case "up", "ctrl+p", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.scroll()
			return m, nil
		case "down", "ctrl+n", "ctrl+j", "tab":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			m.scroll()
			return m, nil
		}
	}

	oldValue := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != oldValue {
		m.refilter()
	}
	return m, cmd
}

// refilter ranks paths against the filter text. An empty filter keeps the
// incoming order.
func (m *PickerModel) refilter() {
	query := strings.ReplaceAll(m.input.Value(), " ", "")
	visible := make([]Candidate, 0, len(m.paths))
	if query == "" {
		for _, p := range m.paths {
			visible = append(visible, Candidate{Path: p})
		}
	} else {
		for _, match := range fuzzy.Find(query, m.paths) {
			visible = append(visible, Candidate{Path: match.Str, Matches: match.MatchedIndexes})
		}
	}
	m.visible = visible
	m.cursor = 0
	m.offset = 0
}

func (m *PickerModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m PickerModel) View() string {
	if m.done {
		return ""
	}

	var rows []string
	end := min(m.offset+m.height, len(m.visible))
	for i := m.offset; i < end; i++ {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		rows = append(rows, prefix+highlight(m.visible[i]))
	}
	if len(rows) == 0 {
		rows = append(rows, dimStyle.Render("  (no matches)"))
	}

	status := dimStyle.Render(fmt.Sprintf("%d/%d • Enter: jump • Esc: cancel", len(m.visible), len(m.paths)))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(m.input.View()),
		strings.Join(rows, "\n"),
		status,
	)
}

func highlight(c Candidate) string {
	if len(c.Matches) == 0 {
		return pathStyle.Render(c.Path)
	}
	matched := make(map[int]bool, len(c.Matches))
	for _, idx := range c.Matches {
		matched[idx] = true
	}

	var b strings.Builder
	for i, r := range c.Path {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(pathStyle.Render(string(r)))
		}
	}
	return b.String()
}

// Pick runs the picker on the terminal, drawing to out, and returns the
// chosen path ("" when cancelled).
func Pick(paths []string, out io.Writer) (string, error) {
	p := tea.NewProgram(NewPicker(paths), tea.WithOutput(out), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run picker: %w", err)
	}
	if m, ok := final.(PickerModel); ok {
		return m.Selected(), nil
	}
	return "", nil
}
