package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wippyai/doccorpus/corpus"
	"github.com/wippyai/doccorpus/meta"
	"github.com/wippyai/doccorpus/store"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const pageSize = 20

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the stored corpus interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			p := tea.NewProgram(newBrowseModel(cmd.Context(), s.Reader()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

type browseState int

const (
	stateList browseState = iota
	stateDetail
)

type browseModel struct {
	ctx      context.Context
	err      error
	reader   *store.Reader
	hier     *corpus.Hierarchy
	detail   meta.Info
	all      []store.Row
	rows     []store.Row
	filter   textinput.Model
	selected int
	offset   int
	state    browseState
	loaded   bool
}

func newBrowseModel(ctx context.Context, r *store.Reader) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "filter by name"
	ti.Prompt = "/ "
	ti.Width = 40
	ti.Focus()
	return &browseModel{ctx: ctx, reader: r, filter: ti, state: stateList}
}

type loadedMsg struct {
	err  error
	hier *corpus.Hierarchy
	rows []store.Row
}

type detailMsg struct {
	err  error
	info meta.Info
}

func (m *browseModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load)
}

func (m *browseModel) load() tea.Msg {
	rows, err := m.reader.Symbols(m.ctx, store.Filter{})
	if err != nil {
		return loadedMsg{err: err}
	}
	c, err := m.reader.Corpus(m.ctx)
	if err != nil {
		return loadedMsg{err: err}
	}
	h, err := corpus.NewHierarchy(c)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{rows: rows, hier: h}
}

func (m *browseModel) open(id meta.SymbolID) tea.Cmd {
	return func() tea.Msg {
		info, err := m.reader.Lookup(m.ctx, id)
		return detailMsg{info: info, err: err}
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "up":
			if m.state == stateList && m.selected > 0 {
				m.selected--
				if m.selected < m.offset {
					m.offset = m.selected
				}
			}
			return m, nil

		case "down":
			if m.state == stateList && m.selected < len(m.rows)-1 {
				m.selected++
				if m.selected >= m.offset+pageSize {
					m.offset = m.selected - pageSize + 1
				}
			}
			return m, nil

		case "enter":
			if m.state == stateList && len(m.rows) > 0 {
				return m, m.open(m.rows[m.selected].ID)
			}
			return m, nil

		case "esc":
			if m.state == stateDetail {
				m.state = stateList
				m.detail = nil
				m.err = nil
				return m, nil
			}
			return m, tea.Quit
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.loaded = true
		m.all = msg.rows
		m.hier = msg.hier
		m.applyFilter()
		return m, nil

	case detailMsg:
		m.detail = msg.info
		m.err = msg.err
		m.state = stateDetail
		return m, nil
	}

	if m.state == stateList {
		var cmd tea.Cmd
		before := m.filter.Value()
		m.filter, cmd = m.filter.Update(msg)
		if m.filter.Value() != before {
			m.applyFilter()
		}
		return m, cmd
	}
	return m, nil
}

func (m *browseModel) applyFilter() {
	q := strings.ToLower(m.filter.Value())
	m.rows = m.rows[:0]
	for _, r := range m.all {
		if q == "" || strings.Contains(strings.ToLower(r.QualifiedName), q) {
			m.rows = append(m.rows, r)
		}
	}
	m.selected, m.offset = 0, 0
}

func (m *browseModel) View() string {
	if m.err != nil && m.state != stateDetail {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress esc to quit.", m.err))
	}
	if !m.loaded {
		return "Loading corpus..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Corpus"))
	fmt.Fprintf(&b, " %d symbols\n\n", len(m.all))

	switch m.state {
	case stateList:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		end := min(m.offset+pageSize, len(m.rows))
		for i := m.offset; i < end; i++ {
			line := fmt.Sprintf("%-9s %s", m.rows[i].Kind, m.rows[i].QualifiedName)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + kindStyle.Render(fmt.Sprintf("%-9s", m.rows[i].Kind)) + " " + m.rows[i].QualifiedName)
			}
			b.WriteString("\n")
		}
		if len(m.rows) == 0 {
			b.WriteString(helpStyle.Render("  no match"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("type to filter • ↑/↓ select • enter open • esc quit"))

	case stateDetail:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(m.describe(m.detail))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc back • ctrl+c quit"))
	}
	return b.String()
}

func (m *browseModel) describe(info meta.Info) string {
	var b strings.Builder
	c := info.Common()
	fmt.Fprintf(&b, "%s %s\n", kindStyle.Render(info.Kind().String()), nameStyle.Render(meta.QualifiedName(info)))
	if c.DefLoc != nil {
		fmt.Fprintf(&b, "defined at %s\n", locString(*c.DefLoc))
	}
	for _, l := range c.Loc {
		fmt.Fprintf(&b, "declared at %s\n", locString(l))
	}
	if text := docText(c.Doc); text != "" {
		b.WriteString("\n")
		b.WriteString(text)
		b.WriteString("\n")
	}

	list := func(title string, infos []meta.Info) {
		if len(infos) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s:\n", title)
		for _, i := range infos {
			fmt.Fprintf(&b, "  %s %s\n", kindStyle.Render(i.Kind().String()), meta.QualifiedName(i))
		}
	}
	if m.hier != nil {
		list("Bases", m.hier.Bases(c.ID))
		list("All bases", m.hier.Ancestors(c.ID))
		list("Derived", m.hier.Derived(c.ID))
		list("Children", m.hier.Children(c.ID))
	}
	return strings.TrimRight(b.String(), "\n")
}
