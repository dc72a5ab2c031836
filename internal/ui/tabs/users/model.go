// Package users provides the user inspection tab.
package users

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nouh2/gaia-admin-tui/internal/app"
	"github.com/Nouh2/gaia-admin-tui/internal/models"
	"github.com/Nouh2/gaia-admin-tui/internal/services/filter"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/components"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/styles"
)

// keyMap defines the key bindings specific to the users tab.
type keyMap struct {
	Enter    key.Binding
	Filter   key.Binding
	Plan     key.Binding
	Verified key.Binding
	Export   key.Binding
	Escape   key.Binding
}

// defaultKeyMap returns the default key bindings for the users tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view conversations"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter by email"),
		),
		Plan: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "cycle plan filter"),
		),
		Verified: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "cycle verified filter"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export xlsx"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back / clear"),
		),
	}
}

// Model represents the users tab state.
type Model struct {
	state    *app.State
	commands *app.Commands
	table    table.Model
	filterIn textinput.Model
	detail   viewport.Model
	spinner  components.LoadingSpinner
	keys     keyMap
	width    int
	height   int

	filtering     bool
	emailQuery    string
	plans         []string
	planIdx       int // 0 means no plan filter
	verified      filter.Tristate
	users         []models.User
	selectedUser  *models.User
	userConvs     []models.Conversation
	loadingDetail bool
}

// New creates a new users model.
func New(state *app.State, commands *app.Commands) *Model {
	filterIn := textinput.New()
	filterIn.Placeholder = "email contains..."
	filterIn.CharLimit = 100
	filterIn.Width = 40

	t := table.New(
		table.WithColumns(defaultColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(s)

	return &Model{
		state:    state,
		commands: commands,
		table:    t,
		filterIn: filterIn,
		detail:   viewport.New(0, 0),
		spinner:  components.NewSpinner("Loading users..."),
		keys:     defaultKeyMap(),
	}
}

func defaultColumns(width int) []table.Column {
	emailWidth := width - 58
	if emailWidth < 20 {
		emailWidth = 20
	}
	if emailWidth > 40 {
		emailWidth = 40
	}
	return []table.Column{
		{Title: "Email", Width: emailWidth},
		{Title: "Plan", Width: 9},
		{Title: "Name", Width: 18},
		{Title: "Verified", Width: 8},
		{Title: "Created", Width: 16},
		{Title: "Req", Width: 5},
	}
}

// Init initializes the users tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages for the users tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	if m.filtering {
		return m.updateFilterInput(msg)
	}
	if m.selectedUser != nil {
		return m.updateDetail(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Enter):
			if row := m.table.SelectedRow(); len(row) > 0 {
				if u := m.userForRow(m.table.Cursor()); u != nil {
					m.selectedUser = u
					m.userConvs = nil
					m.loadingDetail = true
					return m, m.commands.LoadUserConversations(u.ID)
				}
			}

		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			m.filterIn.SetValue(m.emailQuery)
			m.filterIn.Focus()
			return m, textinput.Blink

		case key.Matches(msg, m.keys.Plan):
			m.cyclePlan()
			return m, m.reload()

		case key.Matches(msg, m.keys.Verified):
			m.verified = (m.verified + 1) % 3
			return m, m.reload()

		case key.Matches(msg, m.keys.Export):
			return m, tea.Batch(
				func() tea.Msg { return app.StartLoadingMsg{Resource: "export"} },
				m.commands.ExportUsers(m.currentFilter(), m.emailQuery),
			)

		case key.Matches(msg, m.keys.Escape):
			if m.emailQuery != "" || m.planIdx != 0 || m.verified != filter.Any {
				m.emailQuery = ""
				m.planIdx = 0
				m.verified = filter.Any
				return m, m.reload()
			}

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}

	case app.UsersLoadedMsg:
		if msg.Error == nil || msg.Users != nil {
			m.refreshPlans(msg.Users)
			m.applyFilters(msg.Users)
		}

	case app.UserConversationsLoadedMsg:
		if m.selectedUser != nil && msg.UserID == m.selectedUser.ID {
			m.loadingDetail = false
			m.userConvs = msg.Conversations
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateFilterInput(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.filtering = false
			m.emailQuery = m.filterIn.Value()
			m.filterIn.Blur()
			return m, m.reload()
		case "esc":
			m.filtering = false
			m.filterIn.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filterIn, cmd = m.filterIn.Update(msg)
	return m, cmd
}

func (m *Model) updateDetail(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Escape) {
			m.selectedUser = nil
			m.userConvs = nil
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd

	case app.UserConversationsLoadedMsg:
		if m.selectedUser != nil && msg.UserID == m.selectedUser.ID {
			m.loadingDetail = false
			m.userConvs = msg.Conversations
		}
	}
	return m, nil
}

// reload rebuilds the listing from the snapshot with current filters.
func (m *Model) reload() tea.Cmd {
	return m.commands.LoadUsers(filter.UserFilter{})
}

func (m *Model) currentFilter() filter.UserFilter {
	f := filter.UserFilter{Verified: m.verified}
	if m.planIdx > 0 && m.planIdx <= len(m.plans) {
		f.Plan = m.plans[m.planIdx-1]
	}
	return f
}

func (m *Model) cyclePlan() {
	m.planIdx = (m.planIdx + 1) % (len(m.plans) + 1)
}

func (m *Model) refreshPlans(users []models.User) {
	m.plans = filter.Plans(users)
	if m.planIdx > len(m.plans) {
		m.planIdx = 0
	}
}

// applyFilters narrows the full snapshot listing and fills the table.
func (m *Model) applyFilters(users []models.User) {
	users = filter.Users(users, m.currentFilter())
	if m.emailQuery != "" {
		users = filter.UsersByEmail(users, m.emailQuery)
	}
	m.users = users

	rows := make([]table.Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, table.Row{
			models.OrNA(u.Email),
			u.PlanOrUnknown(),
			u.FullName(),
			models.YesNo(u.IsVerified),
			models.FormatDate(u.CreatedAt),
			strconv.Itoa(u.DailyRequests),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func (m *Model) userForRow(idx int) *models.User {
	if idx < 0 || idx >= len(m.users) {
		return nil
	}
	u := m.users[idx]
	return &u
}

// SetSize sets the available size for the users tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-8, 3))
	m.table.SetColumns(defaultColumns(width))
	m.detail.Width = width
	m.detail.Height = max(height-6, 3)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.selectedUser != nil {
		return []key.Binding{m.keys.Escape}
	}
	return []key.Binding{
		m.keys.Enter,
		m.keys.Filter,
		m.keys.Plan,
		m.keys.Verified,
		m.keys.Export,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Enter, m.keys.Filter},
		{m.keys.Plan, m.keys.Verified},
		{m.keys.Export, m.keys.Escape},
	}
}
