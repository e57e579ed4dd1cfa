package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/lsopt/eval"
	"github.com/wippyai/lsopt/irtext"
	"github.com/wippyai/lsopt/opt"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateView
)

type interactiveModel struct {
	err       error
	scenarios []Scenario
	filtered  []int
	filter    textinput.Model
	body      string
	selected  int
	state     modelState
}

func newInteractiveModel(scenarios []Scenario) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "filter scenarios"
	ti.Prompt = "/ "
	ti.Width = 40

	m := &interactiveModel{
		scenarios: scenarios,
		filter:    ti,
	}
	m.refilter()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) refilter() {
	query := strings.ToLower(m.filter.Value())
	m.filtered = m.filtered[:0]
	for i, sc := range m.scenarios {
		if query == "" || strings.Contains(strings.ToLower(sc.Name), query) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.selected >= len(m.filtered) {
		m.selected = 0
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m, nil
	}

	if m.filter.Focused() {
		switch keyMsg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter", "esc":
			m.filter.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.refilter()
			return m, cmd
		}
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.state == stateBrowse && m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.state == stateBrowse && m.selected < len(m.filtered)-1 {
			m.selected++
		}

	case "/":
		if m.state == stateBrowse {
			m.filter.Focus()
			return m, textinput.Blink
		}

	case "enter":
		if m.state == stateBrowse && len(m.filtered) > 0 {
			sc := m.scenarios[m.filtered[m.selected]]
			m.body, m.err = renderScenario(sc)
			m.state = stateView
		}

	case "esc":
		switch m.state {
		case stateView:
			m.state = stateBrowse
			m.body = ""
			m.err = nil
		case stateBrowse:
			m.filter.SetValue("")
			m.refilter()
		}
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	switch m.state {
	case stateBrowse:
		b.WriteString(titleStyle.Render("lsopt scenarios"))
		b.WriteString("\n\n")
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		if len(m.filtered) == 0 {
			b.WriteString(helpStyle.Render("no scenarios match"))
			b.WriteString("\n")
		}
		for row, idx := range m.filtered {
			line := m.scenarios[idx].Name
			if row == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter view • / filter • q quit"))

	case stateView:
		sc := m.scenarios[m.filtered[m.selected]]
		b.WriteString(titleStyle.Render(sc.Name))
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		} else {
			b.WriteString(m.body)
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}

	return b.String()
}

// renderScenario produces the before/after comparison shown in the viewer.
func renderScenario(sc Scenario) (string, error) {
	blk, err := irtext.Parse(sc.Source)
	if err != nil {
		return "", err
	}
	out, err := opt.Optimize(blk)
	if err != nil {
		return "", err
	}

	args := scenarioInputs(blk, sc.Args)
	orig, err := eval.Run(blk, args)
	if err != nil {
		return "", err
	}
	opti, err := eval.Run(out, args)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if sc.Note != "" {
		b.WriteString(helpStyle.Render(sc.Note))
		b.WriteString("\n\n")
	}
	b.WriteString(sectionStyle.Render("before:"))
	b.WriteString("\n")
	b.WriteString(codeStyle.Render(indent(irtext.Format(blk))))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render(fmt.Sprintf("after (%d of %d instructions removed):", blk.Len()-out.Len(), blk.Len())))
	b.WriteString("\n")
	b.WriteString(codeStyle.Render(indent(irtext.Format(out))))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("escaped values:"))
	b.WriteString("\n  ")
	b.WriteString(resultStyle.Render(formatWords(orig.Escaped)))
	b.WriteString("\n")
	if !wordsEqual(orig.Escaped, opti.Escaped) {
		b.WriteString(errorStyle.Render("✗ optimized block diverges: " + formatWords(opti.Escaped)))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func indent(s string) string {
	if s == "" {
		return "  (empty)"
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}

func runInteractive(scenarios []Scenario) error {
	p := tea.NewProgram(newInteractiveModel(scenarios))
	_, err := p.Run()
	return err
}
