package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sheetsmith/sheetsmith/pkg/suggest"
)

// List styles.
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// SuggestionListModel is the bubbletea model for interactive suggestion
// selection. Enter picks the suggestion under the cursor for application.
type SuggestionListModel struct {
	Suggestions []suggest.Suggestion
	Cursor      int
	Selected    *suggest.Suggestion
	Height      int
	Offset      int
}

// NewSuggestionListModel creates a new suggestion list model.
func NewSuggestionListModel(suggestions []suggest.Suggestion) SuggestionListModel {
	return SuggestionListModel{
		Suggestions: suggestions,
		Height:      15,
	}
}

func (m SuggestionListModel) Init() tea.Cmd {
	return nil
}

func (m SuggestionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Suggestions)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			s := m.Suggestions[m.Cursor]
			m.Selected = &s
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SuggestionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Apply a Suggestion"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ apply  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Suggestions) {
		end = len(m.Suggestions)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Suggestions[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			s.Title,
			string(s.Category),
			fmt.Sprintf("%.0f%%", s.Confidence*100),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Suggestion", "Category", "Confidence").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	if m.Cursor < len(m.Suggestions) {
		b.WriteString(listDimStyle.Render("  " + m.Suggestions[m.Cursor].Description))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Suggestions))))

	return b.String()
}
