package search

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nouh2/gaia-admin-tui/internal/models"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/components"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/styles"
)

// View renders the search tab.
func (m *Model) View() string {
	if m.selected != nil {
		return m.renderDetail()
	}

	var sections []string

	sections = append(sections, styles.TitleStyle.Render("Search"))
	sections = append(sections, styles.HelpStyle.Render(
		fmt.Sprintf("target: %s (t to toggle)", m.mode)))

	inputStyle := styles.BlurredBorderStyle
	if m.editing {
		inputStyle = styles.FocusedBorderStyle
	}
	sections = append(sections, inputStyle.Render(m.input.View()))

	switch {
	case m.searching:
		sections = append(sections, components.RenderSpinnerCentered(m.spinner, m.width, 3))
	case m.term == "":
		sections = append(sections, styles.HelpStyle.Render("Type a term and press enter"))
	default:
		sections = append(sections, m.results.View())
		sections = append(sections, m.renderFooter())
	}

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderFooter() string {
	count := len(m.convs)
	noun := "conversations"
	if m.mode.userResults() {
		count = len(m.users)
		noun = "users"
	}
	return styles.HelpStyle.Render(fmt.Sprintf("%d %s match %q", count, noun, m.term))
}

func (m *Model) renderDetail() string {
	c := m.selected

	var lines []string
	lines = append(lines, styles.TitleStyle.Render(c.TitleOrPlaceholder()))
	lines = append(lines, styles.HelpStyle.Render(fmt.Sprintf(
		"user %s · created %s · %d messages",
		c.ShortUserID(),
		models.FormatDate(c.CreatedAt),
		c.MessageCount(),
	)))
	lines = append(lines, "")

	wrapWidth := max(m.width-10, 30)
	for _, msg := range c.Messages {
		speaker := styles.AssistantMessageStyle.Render("assistant")
		if msg.IsUser {
			speaker = styles.UserMessageStyle.Render("user")
		}
		lines = append(lines, speaker)
		lines = append(lines, lipgloss.NewStyle().Width(wrapWidth).Render(msg.Content))
		lines = append(lines, "")
	}

	lines = append(lines, styles.HelpStyle.Render("Press esc to go back"))

	m.detail.SetContent(lipgloss.JoinVertical(lipgloss.Left, lines...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.detail.View())
}
