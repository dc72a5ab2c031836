package overview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nouh2/gaia-admin-tui/internal/models"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/components"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/styles"
)

// View renders the overview tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	var sections []string
	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderTotals())
	sections = append(sections, m.renderPlans())
	sections = append(sections, m.renderVolume())
	sections = append(sections, m.renderRecent())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Gaia Admin Console")
	subtitle := styles.HelpStyle.Render("Accounts and assistant conversations at a glance")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderTotals() string {
	ov := m.state.GetOverview()
	s := ov.Stats

	verifiedPct := 0.0
	if s.TotalUsers > 0 {
		verifiedPct = float64(s.VerifiedUsers) / float64(s.TotalUsers) * 100
	}

	cells := []string{
		m.renderStatCell("Users", fmt.Sprintf("%d", s.TotalUsers)),
		m.renderStatCell("Verified", fmt.Sprintf("%d (%.0f%%)", s.VerifiedUsers, verifiedPct)),
		m.renderStatCell("Conversations", fmt.Sprintf("%d", s.TotalConversations)),
		m.renderStatCell("Messages", fmt.Sprintf("%d", s.TotalMessages)),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *Model) renderStatCell(label, value string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.HelpStyle.Render(label),
		lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Render(value),
	)
	return styles.CardStyle.Render(content)
}

func (m *Model) renderPlans() string {
	ov := m.state.GetOverview()
	if len(ov.Stats.PlanCounts) == 0 {
		return ""
	}

	plans := make([]string, 0, len(ov.Stats.PlanCounts))
	for p := range ov.Stats.PlanCounts {
		plans = append(plans, p)
	}
	sort.Strings(plans)

	values := make([]float64, len(plans))
	for i, p := range plans {
		values[i] = float64(ov.Stats.PlanCounts[p])
	}

	chart := components.RenderBarChart(values, plans, max(m.width-12, 30))

	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Plans"),
		chart,
	))
}

func (m *Model) renderVolume() string {
	ov := m.state.GetOverview()
	if len(ov.Volume) == 0 {
		return ""
	}

	data := make([]float64, len(ov.Volume))
	for i, p := range ov.Volume {
		data[i] = float64(p.Count)
	}

	caption := fmt.Sprintf("conversations/day, last %d days", len(ov.Volume))
	chart := components.RenderLineChart(data, max(m.width-16, 30), 6, caption)

	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Conversation Volume"),
		chart,
	))
}

func (m *Model) renderRecent() string {
	ov := m.state.GetOverview()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Recent Conversations"))

	if len(ov.Recent) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No conversations yet"))
		return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	for _, c := range ov.Recent {
		rows = append(rows, m.renderRecentRow(c))
	}

	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderRecentRow(c models.Conversation) string {
	title := c.TitleOrPlaceholder()
	maxTitle := max(m.width-50, 20)
	if len(title) > maxTitle {
		title = title[:maxTitle-3] + "..."
	}

	when := models.FormatDate(c.CreatedAt)
	count := fmt.Sprintf("%3d msg", c.MessageCount())

	return strings.Join([]string{
		styles.HelpStyle.Render(when),
		lipgloss.NewStyle().Foreground(styles.Subtle).Render(c.ShortUserID()),
		styles.HelpStyle.Render(count),
		title,
	}, "  ")
}
