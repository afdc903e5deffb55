package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gi-bielefeld/carp/pkg/pipeline"
	"github.com/gi-bielefeld/carp/pkg/split"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// splitBrowser - Interactive split table
// =============================================================================

// splitBrowser is the bubbletea model behind `carp splits --interactive`.
// It pages through ranked splits and shows both sides of the selected one.
type splitBrowser struct {
	all       []split.Entry
	tree      []split.Entry
	residuals map[string]split.Residual
	index     int

	treeOnly bool
	cursor   int
	offset   int
	height   int
}

func newSplitBrowser(res *pipeline.Result, treeOnly bool) splitBrowser {
	m := splitBrowser{
		all:       res.Splits,
		tree:      res.Tree,
		residuals: make(map[string]split.Residual, len(res.Residuals)),
		index:     res.Index,
		treeOnly:  treeOnly && res.Tree != nil,
		height:    15,
	}
	for _, r := range res.Residuals {
		m.residuals[r.ID] = r
	}
	return m
}

func (m splitBrowser) entries() []split.Entry {
	if m.treeOnly {
		return m.tree
	}
	return m.all
}

func (m splitBrowser) Init() tea.Cmd { return nil }

func (m splitBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.entries())
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(n-1, 0)
		case "t":
			if m.tree != nil {
				m.treeOnly = !m.treeOnly
				m.cursor, m.offset = 0, 0
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-14, 5)
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	return m, nil
}

func (m splitBrowser) View() string {
	var b strings.Builder
	entries := m.entries()

	title := "Splits"
	if m.treeOnly {
		title = "Splits (tree)"
	}
	b.WriteString(StyleTitle.Render(title) + "  " + listDimStyle.Render(fmt.Sprintf("CARP index %d", m.index)))
	b.WriteString("\n")
	help := "↑/↓ navigate  q quit"
	if m.tree != nil {
		help = "↑/↓ navigate  t toggle tree  q quit"
	}
	b.WriteString(listDimStyle.Render(help))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(listDimStyle.Render("  no supported splits"))
		return b.String()
	}

	end := min(m.offset+m.height, len(entries))
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		e := entries[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, strconv.Itoa(e.Support), truncate(strings.Join(e.Side, " "), 48)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Support", "Genomes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if m.offset+row == m.cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(m.detail(entries[m.cursor]))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(entries))))
	return b.String()
}

// detail renders both sides of e and its residual indices when known.
func (m splitBrowser) detail(e split.Entry) string {
	lines := []string{
		StyleValue.Render(strings.Join(e.Side, " ")) + listDimStyle.Render("  |  support "+strconv.Itoa(e.Support)),
	}
	if r, ok := m.residuals[e.ID]; ok {
		lines = append(lines,
			listDimStyle.Render("other side: ")+strings.Join(r.Complement, " "),
			fmt.Sprintf("%s %d  %s %d  %s %s",
				listDimStyle.Render("index side"), r.IndexSide,
				listDimStyle.Render("other"), r.IndexOther,
				listDimStyle.Render("residual"), styleResidual.Render(strconv.Itoa(r.Residual))),
		)
	}
	return detailBoxStyle.Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
