// Package tui is the interactive outline browser: a live filter box over the
// parsed argument forest, with highlight-and-decay on the selected node.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"inquest-cli/internal/highlight"
	"inquest-cli/internal/model"
	"inquest-cli/internal/outline"
)

type replanMsg struct{}

type scrollMsg struct{ nodeID string }

type appModel struct {
	resourceID string
	doc        *model.ParsedResource

	input  textinput.Model
	vp     viewport.Model
	ctrl   *highlight.Controller
	send   func(tea.Msg)
	thesis string

	rows   []outlineRow
	cursor int
	ready  bool
}

func newAppModel(resourceID string, doc *model.ParsedResource, send func(tea.Msg)) *appModel {
	ti := textinput.New()
	ti.Placeholder = "filter outline"
	ti.Prompt = "/ "
	ti.CharLimit = 120

	m := &appModel{
		resourceID: resourceID,
		doc:        doc,
		input:      ti,
		send:       send,
		thesis:     renderThesis(doc),
	}
	m.ctrl = highlight.New(
		highlight.WithScrollFunc(func(nodeID string) { send(scrollMsg{nodeID: nodeID}) }),
		highlight.WithOnChange(func() { send(replanMsg{}) }),
	)
	return m
}

func renderThesis(doc *model.ParsedResource) string {
	var b strings.Builder
	if doc.MainThesis != "" {
		fmt.Fprintf(&b, "**%s**\n\n", doc.MainThesis)
	}
	if doc.Summary != "" {
		b.WriteString(doc.Summary)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return ""
	}
	out, err := glamour.Render(b.String(), "auto")
	if err != nil {
		return b.String()
	}
	return strings.TrimRight(out, "\n")
}

func (m *appModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerLines := lipgloss.Height(m.headerView())
		m.vp = viewport.New(msg.Width, msg.Height-headerLines-2)
		m.ready = true
		m.refresh()
		return m, nil

	case replanMsg:
		m.refresh()
		return m, nil

	case scrollMsg:
		m.scrollTo(msg.nodeID)
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.input.Blur()
				m.refresh()
				return m, nil
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				m.cursor = 0
				m.refresh()
				return m, cmd
			}
		}
		switch msg.String() {
		case "q", "ctrl+c":
			m.ctrl.Dispose()
			return m, tea.Quit
		case "/":
			m.input.Focus()
			return m, textinput.Blink
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.refresh()
			return m, nil
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			m.refresh()
			return m, nil
		case "enter":
			if m.cursor < len(m.rows) {
				m.highlightRow(m.rows[m.cursor].id)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *appModel) visible() []model.OutlineNode {
	return outline.Filter(m.doc.Outline, m.input.Value())
}

// highlightRow retargets the controller; the plan side effect starts the
// scroll and decay sequence for the node.
func (m *appModel) highlightRow(id string) {
	m.ctrl.Plan(m.visible(), id)
	m.refresh()
}

func (m *appModel) refresh() {
	if !m.ready {
		return
	}
	nodes := m.visible()
	plan := m.ctrl.Plan(nodes, m.ctrl.Target())
	faded := map[string]bool{}
	for id := range plan {
		faded[id] = m.ctrl.Faded(id)
	}
	m.rows = flattenOutline(nodes, plan, faded)
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
	m.vp.SetContent(m.rowsView())
}

func (m *appModel) scrollTo(nodeID string) {
	idx := rowIndex(m.rows, nodeID)
	if idx < 0 {
		return
	}
	if idx < m.vp.YOffset || idx >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(max(0, idx-m.vp.Height/2))
	}
}

func (m *appModel) headerView() string {
	header := styleHeader.Render("inquest outline: " + m.resourceID)
	stats := styleMuted.Render(fmt.Sprintf("%d claims, %d evidence, %d verified",
		m.doc.TotalClaims, m.doc.TotalEvidence, m.doc.VerifiedClaims))
	parts := []string{header, stats}
	if m.thesis != "" {
		parts = append(parts, m.thesis)
	}
	parts = append(parts, m.input.View())
	return strings.Join(parts, "\n")
}

func (m *appModel) rowsView() string {
	var b strings.Builder
	for i, r := range m.rows {
		marker := "  "
		if r.children > 0 {
			marker = "▸ "
			if r.expanded {
				marker = "▾ "
			}
		}
		line := strings.Repeat("  ", r.depth) + marker + r.title
		st := lipgloss.NewStyle()
		switch {
		case r.lit:
			st = styleLit
		case r.faded:
			st = styleFaded
		case r.kind == model.NodeKindEvidence:
			st = styleEvidence
		}
		if i == m.cursor {
			st = st.Inherit(styleSelected)
		}
		b.WriteString(st.Render(line))
		b.WriteString("\n")
	}
	if len(m.rows) == 0 {
		b.WriteString(styleMuted.Render("no nodes match the filter"))
	}
	return b.String()
}

func (m *appModel) View() string {
	if !m.ready {
		return "loading..."
	}
	help := styleMuted.Render("/ filter   enter highlight   j/k move   q quit")
	return m.headerView() + "\n" + m.vp.View() + "\n" + help
}

// Run starts the outline browser for one parsed resource.
func Run(resourceID string, doc *model.ParsedResource) error {
	var p *tea.Program
	m := newAppModel(resourceID, doc, func(msg tea.Msg) {
		if p != nil {
			p.Send(msg)
		}
	})
	p = tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	m.ctrl.Dispose()
	return err
}
