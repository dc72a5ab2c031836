package conversations

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nouh2/gaia-admin-tui/internal/models"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/components"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/styles"
)

// View renders the conversations tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	if m.selected != nil {
		return m.renderDetail()
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.filtering {
		sections = append(sections, styles.FocusedBorderStyle.Render(m.filterIn.View()))
	}

	sections = append(sections, m.table.View())
	sections = append(sections, m.renderFooter())

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("Conversations")

	var parts []string
	if m.titleQuery != "" {
		parts = append(parts, fmt.Sprintf("title~%q", m.titleQuery))
	}
	if minMsgs := minMessageSteps[m.minIdx]; minMsgs > 0 {
		parts = append(parts, fmt.Sprintf("≥%d messages", minMsgs))
	}

	if len(parts) == 0 {
		return title
	}
	active := styles.InfoTextStyle.Render("filters: " + strings.Join(parts, ", "))
	return lipgloss.JoinVertical(lipgloss.Left, title, active)
}

func (m *Model) renderFooter() string {
	return styles.HelpStyle.Render(fmt.Sprintf("%d conversations shown, newest first", len(m.convs)))
}

func (m *Model) renderDetail() string {
	c := m.selected

	var lines []string
	lines = append(lines, styles.TitleStyle.Render(c.TitleOrPlaceholder()))
	lines = append(lines, styles.HelpStyle.Render(fmt.Sprintf(
		"user %s · created %s · updated %s · %d messages",
		c.ShortUserID(),
		models.FormatDate(c.CreatedAt),
		models.FormatDate(c.UpdatedAt),
		c.MessageCount(),
	)))
	lines = append(lines, "")

	if len(c.Messages) == 0 {
		lines = append(lines, styles.HelpStyle.Render("This conversation has no messages"))
	}

	wrapWidth := max(m.width-10, 30)
	for _, msg := range c.Messages {
		lines = append(lines, m.renderMessage(msg, wrapWidth)...)
		lines = append(lines, "")
	}

	lines = append(lines, styles.HelpStyle.Render("Press e to export, esc to go back"))

	m.detail.SetContent(lipgloss.JoinVertical(lipgloss.Left, lines...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.detail.View())
}

func (m *Model) renderMessage(msg models.Message, width int) []string {
	speaker := styles.AssistantMessageStyle.Render("assistant")
	if msg.IsUser {
		speaker = styles.UserMessageStyle.Render("user")
	}

	body := lipgloss.NewStyle().Width(width).Render(msg.Content)

	return []string{speaker, body}
}
