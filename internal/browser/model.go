package browser

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/voicetreelab/lazy-tutorial/internal/tutorial"
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#268bd2")).Bold(true)
	branchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2aa198"))
	leafStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#93a1a1"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fdf6e3")).Background(lipgloss.Color("#073642")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#586e75"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#cb4b16")).Italic(true)
)

// Model is a keyboard-driven view over a provider's tree
type Model struct {
	provider *tutorial.Provider
	path     []string // breadcrumb labels only
	parents  []level  // levels above the current one, innermost last
	items    []tutorial.Node
	cursor   int
	width    int
	quitting bool
}

type level struct {
	items  []tutorial.Node
	cursor int
}

// New creates a browser positioned at start. If start does not resolve the
// browser opens at the root.
func New(provider *tutorial.Provider, start string) Model {
	root, _ := provider.Lookup(tutorial.RootPath)
	m := Model{provider: provider, items: root}
	for _, segment := range tutorial.ParsePath(start) {
		i, ok := m.indexOf(segment)
		if !ok {
			return Model{provider: provider, items: root}
		}
		m.cursor = i
		m.descend()
	}
	return m
}

// indexOf finds the first branch labeled label on the current level
func (m *Model) indexOf(label string) (int, bool) {
	for i, n := range m.items {
		if n.IsBranch() && n.Label() == label {
			return i, true
		}
	}
	return 0, false
}

// Path returns the current location as a slash path
func (m Model) Path() string {
	return tutorial.JoinPath(m.path)
}

// Cursor returns the selected row index
func (m Model) Cursor() int {
	return m.cursor
}

// Selected returns the node under the cursor, ok=false on an empty level
func (m Model) Selected() (tutorial.Node, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return tutorial.Node{}, false
	}
	return m.items[m.cursor], true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "j", "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "l", "right", "enter":
			m.descend()
		case "h", "left", "esc":
			m.ascend()
		}
	}
	return m, nil
}

func (m *Model) descend() {
	node, ok := m.Selected()
	if !ok || !node.IsBranch() {
		return
	}
	m.parents = append(m.parents, level{items: m.items, cursor: m.cursor})
	m.path = append(m.path, node.Label())
	m.items = node.Children()
	m.cursor = 0
}

func (m *Model) ascend() {
	if len(m.parents) == 0 {
		return
	}
	last := len(m.parents) - 1
	parent := m.parents[last]
	m.parents = m.parents[:last]
	m.path = m.path[:last]
	m.items = parent.items
	m.cursor = parent.cursor
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.provider.Name() + " " + m.Path()))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(emptyStyle.Render("(empty)"))
		b.WriteString("\n")
	}

	for i, n := range m.items {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		line := prefix + n.Title()
		if n.IsBranch() {
			line += " /"
		}
		style := leafStyle
		if n.IsBranch() {
			style = branchStyle
		}
		if i == m.cursor {
			style = selectedStyle
		}
		if m.width > 0 {
			style = style.MaxWidth(m.width)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("j/k move • l/enter open • h/esc back • q quit"))
	b.WriteString("\n")
	return b.String()
}
