// Package search provides the keyword search tab over messages and emails.
package search

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
	"github.com/Nouh2/gaia-admin-tui/internal/ui/components"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/styles"
)

// searchMode selects what the query runs against.
type searchMode int

const (
	modeMessages searchMode = iota
	modeEmails
	modeUserID
	modeConvID
	modeCount
)

func (s searchMode) String() string {
	switch s {
	case modeEmails:
		return "user emails"
	case modeUserID:
		return "user id (exact)"
	case modeConvID:
		return "conversation id (exact)"
	default:
		return "message bodies"
	}
}

// userResults reports whether the mode yields user rows rather than
// conversation rows.
func (s searchMode) userResults() bool {
	return s == modeEmails || s == modeUserID
}

// keyMap defines the key bindings specific to the search tab.
type keyMap struct {
	Search key.Binding
	Mode   key.Binding
	Enter  key.Binding
	Escape key.Binding
}

// defaultKeyMap returns the default key bindings for the search tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "edit query"),
		),
		Mode: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle target"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open result"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back / clear"),
		),
	}
}

// Model represents the search tab state.
type Model struct {
	state    *app.State
	commands *app.Commands
	input    textinput.Model
	results  table.Model
	detail   viewport.Model
	spinner  components.LoadingSpinner
	keys     keyMap
	width    int
	height   int

	mode      searchMode
	editing   bool
	searching bool
	term      string
	convs     []models.Conversation
	users     []models.User
	selected  *models.Conversation
}

// New creates a new search model.
func New(state *app.State, commands *app.Commands) *Model {
	input := textinput.New()
	input.Placeholder = "search term..."
	input.CharLimit = 200
	input.Width = 50

	t := table.New(
		table.WithColumns(messageColumns(80)),
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
		input:    input,
		results:  t,
		detail:   viewport.New(0, 0),
		spinner:  components.NewSpinner("Searching..."),
		keys:     defaultKeyMap(),
		editing:  true,
	}
}

func messageColumns(width int) []table.Column {
	titleWidth := width - 46
	if titleWidth < 20 {
		titleWidth = 20
	}
	return []table.Column{
		{Title: "Created", Width: 16},
		{Title: "User", Width: 15},
		{Title: "Msgs", Width: 5},
		{Title: "Title", Width: titleWidth},
	}
}

func emailColumns(width int) []table.Column {
	emailWidth := width - 30
	if emailWidth < 20 {
		emailWidth = 20
	}
	return []table.Column{
		{Title: "Email", Width: emailWidth},
		{Title: "Plan", Width: 9},
		{Title: "Verified", Width: 8},
	}
}

// Init initializes the search tab.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Init(), textinput.Blink)
}

// Update handles messages for the search tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	if m.selected != nil {
		return m.updateDetail(msg)
	}
	if m.editing {
		return m.updateInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Search):
			m.editing = true
			m.input.Focus()
			return m, textinput.Blink

		case key.Matches(msg, m.keys.Mode):
			m.toggleMode()
			if m.term != "" {
				return m, m.runSearch()
			}

		case key.Matches(msg, m.keys.Enter):
			if !m.mode.userResults() {
				if c := m.convForRow(m.results.Cursor()); c != nil {
					m.selected = c
					m.detail.GotoTop()
				}
			}

		case key.Matches(msg, m.keys.Escape):
			m.term = ""
			m.convs = nil
			m.users = nil
			m.results.SetRows(nil)
			m.editing = true
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink

		default:
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			cmds = append(cmds, cmd)
		}

	case app.ConversationSearchResultMsg:
		if !m.mode.userResults() && msg.Term == m.term {
			m.searching = false
			m.convs = msg.Conversations
			m.fillConversationRows()
		}

	case app.UserSearchResultMsg:
		if m.mode.userResults() && msg.Term == m.term {
			m.searching = false
			m.users = msg.Users
			m.fillUserRows()
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateInput(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.editing = false
			m.input.Blur()
			m.term = m.input.Value()
			if m.term == "" {
				return m, nil
			}
			return m, m.runSearch()
		case "esc":
			m.editing = false
			m.input.Blur()
			return m, nil
		case "tab":
			m.toggleMode()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateDetail(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Escape) {
			m.selected = nil
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) toggleMode() {
	m.mode = (m.mode + 1) % modeCount
	if m.mode.userResults() {
		m.results.SetColumns(emailColumns(m.width))
	} else {
		m.results.SetColumns(messageColumns(m.width))
	}
	m.results.SetRows(nil)
	m.convs = nil
	m.users = nil
}

func (m *Model) runSearch() tea.Cmd {
	m.searching = true
	switch m.mode {
	case modeEmails:
		return m.commands.SearchUsers(m.term)
	case modeUserID:
		return m.commands.FindUserByID(m.term)
	case modeConvID:
		return m.commands.FindConversationByID(m.term)
	default:
		return m.commands.SearchConversations(m.term)
	}
}

func (m *Model) fillConversationRows() {
	rows := make([]table.Row, 0, len(m.convs))
	for _, c := range m.convs {
		rows = append(rows, table.Row{
			models.FormatDate(c.CreatedAt),
			c.ShortUserID(),
			strconv.Itoa(c.MessageCount()),
			c.TitleOrPlaceholder(),
		})
	}
	m.results.SetRows(rows)
	m.results.SetCursor(0)
}

func (m *Model) fillUserRows() {
	rows := make([]table.Row, 0, len(m.users))
	for _, u := range m.users {
		rows = append(rows, table.Row{
			models.OrNA(u.Email),
			u.PlanOrUnknown(),
			models.YesNo(u.IsVerified),
		})
	}
	m.results.SetRows(rows)
	m.results.SetCursor(0)
}

func (m *Model) convForRow(idx int) *models.Conversation {
	if idx < 0 || idx >= len(m.convs) {
		return nil
	}
	c := m.convs[idx]
	return &c
}

// SetSize sets the available size for the search tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.results.SetHeight(max(height-9, 3))
	if m.mode.userResults() {
		m.results.SetColumns(emailColumns(width))
	} else {
		m.results.SetColumns(messageColumns(width))
	}
	m.detail.Width = width
	m.detail.Height = max(height-6, 3)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.selected != nil {
		return []key.Binding{m.keys.Escape}
	}
	return []key.Binding{
		m.keys.Search,
		m.keys.Mode,
		m.keys.Enter,
		m.keys.Escape,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Search, m.keys.Mode},
		{m.keys.Enter, m.keys.Escape},
	}
}
