package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sitegrid/sitegrid/pkg/diagram"
)

// previewCommand creates the preview command for browsing a diagram in the
// terminal.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [diagram.json]",
		Short: "Browse a sitemap diagram interactively",
		Long: `Browse a sitemap diagram interactively.

The preview command opens a terminal browser over a diagram JSON file
(produced by 'build' or 'layout'). Pages are listed with their category,
depth, and computed position. Use tab to cycle through category filters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			model := NewPageListModel(doc)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// List styles
var (
	listNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PageListModel - Interactive page browser
// =============================================================================

// PageListModel is the bubbletea model for browsing diagram pages.
type PageListModel struct {
	Doc        diagram.Document
	Categories []string // "" means all, then one entry per column
	CatIndex   int
	Cursor     int
	Height     int
	Offset     int
}

// NewPageListModel creates a page browser over the document.
func NewPageListModel(doc diagram.Document) PageListModel {
	cats := []string{""}
	for _, col := range doc.Columns {
		cats = append(cats, col.Category)
	}
	if len(cats) == 1 {
		seen := map[string]bool{}
		for _, n := range doc.Nodes {
			if !seen[n.Category] {
				seen[n.Category] = true
				cats = append(cats, n.Category)
			}
		}
	}
	return PageListModel{
		Doc:        doc,
		Categories: cats,
		Height:     15,
	}
}

// visible returns the nodes matching the active category filter.
func (m PageListModel) visible() []diagram.Node {
	cat := m.Categories[m.CatIndex]
	if cat == "" {
		return m.Doc.Nodes
	}
	var nodes []diagram.Node
	for _, n := range m.Doc.Nodes {
		if n.Category == cat {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (m PageListModel) Init() tea.Cmd {
	return nil
}

func (m PageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.visible())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab":
			m.CatIndex = (m.CatIndex + 1) % len(m.Categories)
			m.Cursor = 0
			m.Offset = 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PageListModel) View() string {
	var b strings.Builder

	title := m.Doc.Title
	if title == "" {
		title = "Sitemap"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab filter category  q quit"))
	b.WriteString("\n\n")

	nodes := m.visible()
	end := m.Offset + m.Height
	if end > len(nodes) {
		end = len(nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		name := n.Title
		if name == "" {
			name = n.ID
		}

		pos := "—"
		if n.Pos != nil {
			pos = fmt.Sprintf("%.0f, %.0f", n.Pos.X, n.Pos.Y)
		}

		rows = append(rows, []string{
			cursor,
			strings.Repeat("  ", n.Depth) + name,
			n.Category,
			fmt.Sprintf("%d", n.Depth),
			pos,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Page", "Category", "Depth", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col >= 2 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	filter := "all categories"
	if cat := m.Categories[m.CatIndex]; cat != "" {
		filter = "category: " + cat
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %s", m.Cursor+1, len(nodes), filter)))

	return b.String()
}
