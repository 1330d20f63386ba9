package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/embarkos/mem-layout/composer"
	"github.com/embarkos/mem-layout/region"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	regionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	addrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD580"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateSearch
)

type interactiveModel struct {
	placement *composer.Placement
	variant   string
	search    textinput.Model
	result    string
	selected  int
	state     modelState
}

func newInteractiveModel(variant string, p *composer.Placement) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "__estack"
	ti.Prompt = "symbol: "
	ti.Width = 30

	return &interactiveModel{
		placement: p,
		variant:   variant,
		search:    ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateBrowse {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.placement.Regions)-1 {
				m.selected++
			}

		case "/":
			if m.state == stateBrowse {
				m.state = stateSearch
				m.result = ""
				m.search.SetValue("")
				m.search.Focus()
				return m, textinput.Blink
			}

		case "enter":
			if m.state == stateSearch {
				m.result = m.lookup(m.search.Value())
			}

		case "esc":
			if m.state == stateSearch {
				m.state = stateBrowse
				m.result = ""
				m.search.Blur()
			}
		}
	}

	if m.state == stateSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) lookup(symbol string) string {
	addr, ok := m.placement.Symbols.Addr(strings.TrimSpace(symbol))
	if !ok {
		return errorStyle.Render(fmt.Sprintf("symbol %q not defined", symbol))
	}
	return addrStyle.Render(fmt.Sprintf("%#010x", addr))
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Memory Layout"))
	fmt.Fprintf(&b, " %s  origin %#x\n\n", m.variant, m.placement.Origin)

	for i, r := range m.placement.Regions {
		line := m.formatRegion(r)
		if i == m.selected && m.state == stateBrowse {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse:
		b.WriteString(helpStyle.Render("↑/↓ select • / symbol lookup • q quit"))
	case stateSearch:
		b.WriteString(m.search.View())
		if m.result != "" {
			b.WriteString("  ")
			b.WriteString(m.result)
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter lookup • esc back"))
	}

	return b.String()
}

func (m *interactiveModel) formatRegion(r composer.Placed) string {
	line := fmt.Sprintf("%-12s %s",
		regionStyle.Render(r.Region.Name),
		addrStyle.Render(fmt.Sprintf("[%#010x, %#010x)", r.Start, r.End)))

	var tags []string
	if r.Region.Kind == region.ZeroFill {
		tags = append(tags, "zerofill")
	}
	if r.Region.Reclaimable {
		tags = append(tags, "reclaimable")
	}
	if !r.SizeResolved {
		tags = append(tags, "slot")
	}
	if len(tags) > 0 {
		line += " " + tagStyle.Render(strings.Join(tags, " "))
	}
	return line
}

func (m *interactiveModel) detail() string {
	if len(m.placement.Regions) == 0 {
		return ""
	}
	r := m.placement.Regions[m.selected]

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d bytes", regionStyle.Render(r.Region.Name), r.Size())
	if r.Region.Align != 0 {
		fmt.Fprintf(&b, ", align %d", r.Region.Align)
	}
	if r.Region.EndAlign != 0 {
		fmt.Fprintf(&b, ", end align %d", r.Region.EndAlign)
	}
	fmt.Fprintf(&b, "\n  %s = %s", r.Region.StartSymbol(),
		addrStyle.Render(fmt.Sprintf("%#010x", r.Start)))
	fmt.Fprintf(&b, "\n  %s = %s", r.Region.EndSymbol(),
		addrStyle.Render(fmt.Sprintf("%#010x", r.End)))
	if len(r.Region.Match) > 0 {
		fmt.Fprintf(&b, "\n  input sections: %s", strings.Join(r.Region.Match, " "))
	}
	return b.String()
}

func runInteractive(variant string, p *composer.Placement) error {
	prog := tea.NewProgram(newInteractiveModel(variant, p), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
