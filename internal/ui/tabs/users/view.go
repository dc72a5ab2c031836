package users

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nouh2/gaia-admin-tui/internal/models"
	"github.com/Nouh2/gaia-admin-tui/internal/services/filter"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/components"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/styles"
)

// View renders the users tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	if m.selectedUser != nil {
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
	title := styles.TitleStyle.Render("Users")

	var parts []string
	if m.emailQuery != "" {
		parts = append(parts, fmt.Sprintf("email~%q", m.emailQuery))
	}
	if f := m.currentFilter(); f.Plan != "" {
		parts = append(parts, "plan="+f.Plan)
	}
	switch m.verified {
	case filter.Yes:
		parts = append(parts, "verified")
	case filter.No:
		parts = append(parts, "unverified")
	}

	if len(parts) == 0 {
		return title
	}
	active := styles.InfoTextStyle.Render("filters: " + strings.Join(parts, ", "))
	return lipgloss.JoinVertical(lipgloss.Left, title, active)
}

func (m *Model) renderFooter() string {
	return styles.HelpStyle.Render(fmt.Sprintf("%d users shown", len(m.users)))
}

func (m *Model) renderDetail() string {
	u := m.selectedUser

	var lines []string
	lines = append(lines, styles.TitleStyle.Render(models.OrNA(u.Email)))
	lines = append(lines, m.renderProfile(u))
	lines = append(lines, "")
	lines = append(lines, styles.SubTitleStyle.Render("Conversations"))

	switch {
	case m.loadingDetail:
		lines = append(lines, styles.HelpStyle.Render("Loading conversations..."))
	case len(m.userConvs) == 0:
		lines = append(lines, styles.HelpStyle.Render("No conversations for this user"))
	default:
		for _, c := range m.userConvs {
			lines = append(lines, fmt.Sprintf("%s  %s  %s",
				styles.HelpStyle.Render(models.FormatDate(c.CreatedAt)),
				styles.HelpStyle.Render(fmt.Sprintf("%3d msg", c.MessageCount())),
				c.TitleOrPlaceholder(),
			))
		}
	}

	lines = append(lines, "")
	lines = append(lines, styles.HelpStyle.Render("Press esc to go back"))

	m.detail.SetContent(lipgloss.JoinVertical(lipgloss.Left, lines...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.detail.View())
}

func (m *Model) renderProfile(u *models.User) string {
	planStyle := styles.GetPlanStyle(u.PlanOrUnknown())

	verified := styles.UnverifiedStyle.Render("unverified")
	if u.IsVerified {
		verified = styles.VerifiedStyle.Render("verified")
	}

	suspended := ""
	if u.IsSuspended {
		suspended = "  " + styles.ErrorTextStyle.Render("SUSPENDED")
	}

	rows := []string{
		fmt.Sprintf("Name        %s", u.FullName()),
		fmt.Sprintf("Plan        %s%s", planStyle.Render(u.PlanOrUnknown()), suspended),
		fmt.Sprintf("Status      %s", verified),
		fmt.Sprintf("Created     %s", models.FormatDate(u.CreatedAt)),
		fmt.Sprintf("Expires     %s", models.FormatDate(u.AccountExpiresAt)),
		fmt.Sprintf("Requests    %d today (last %s)", u.DailyRequests, models.FormatDate(u.LastRequestDate)),
		fmt.Sprintf("Stripe      %s", models.OrNA(u.StripeCustomerID)),
	}

	return styles.CardStyle.Render(strings.Join(rows, "\n"))
}
