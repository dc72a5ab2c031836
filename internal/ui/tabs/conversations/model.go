// Package conversations provides the conversation browsing tab.
package conversations

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

// minMessageSteps are the cycling choices for the message-count filter.
var minMessageSteps = []int{0, 2, 5, 10}

// keyMap defines the key bindings specific to the conversations tab.
type keyMap struct {
	Enter       key.Binding
	Filter      key.Binding
	MinMessages key.Binding
	Export      key.Binding
	Escape      key.Binding
}

// defaultKeyMap returns the default key bindings for the conversations tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "read conversation"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter by title"),
		),
		MinMessages: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "cycle min messages"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export json"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back / clear"),
		),
	}
}

// Model represents the conversations tab state.
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

	filtering  bool
	titleQuery string
	minIdx     int
	convs      []models.Conversation
	selected   *models.Conversation
}

// New creates a new conversations model.
func New(state *app.State, commands *app.Commands) *Model {
	filterIn := textinput.New()
	filterIn.Placeholder = "title contains..."
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
		spinner:  components.NewSpinner("Loading conversations..."),
		keys:     defaultKeyMap(),
	}
}

func defaultColumns(width int) []table.Column {
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

// Init initializes the conversations tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages for the conversations tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	if m.filtering {
		return m.updateFilterInput(msg)
	}
	if m.selected != nil {
		return m.updateDetail(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Enter):
			if c := m.convForRow(m.table.Cursor()); c != nil {
				m.selected = c
				m.detail.GotoTop()
			}

		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			m.filterIn.SetValue(m.titleQuery)
			m.filterIn.Focus()
			return m, textinput.Blink

		case key.Matches(msg, m.keys.MinMessages):
			m.minIdx = (m.minIdx + 1) % len(minMessageSteps)
			return m, m.reload()

		case key.Matches(msg, m.keys.Export):
			if c := m.convForRow(m.table.Cursor()); c != nil {
				return m, m.commands.ExportConversation(c.ID)
			}

		case key.Matches(msg, m.keys.Escape):
			if m.titleQuery != "" || m.minIdx != 0 {
				m.titleQuery = ""
				m.minIdx = 0
				return m, m.reload()
			}

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}

	case app.ConversationsLoadedMsg:
		if msg.Error == nil || msg.Conversations != nil {
			m.applyFilters(msg.Conversations)
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
			m.titleQuery = m.filterIn.Value()
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
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.selected = nil
			return m, nil
		case key.Matches(msg, m.keys.Export):
			return m, m.commands.ExportConversation(m.selected.ID)
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) reload() tea.Cmd {
	return m.commands.LoadConversations(filter.ConversationFilter{})
}

func (m *Model) currentFilter() filter.ConversationFilter {
	return filter.ConversationFilter{
		TitleQuery:  m.titleQuery,
		MinMessages: minMessageSteps[m.minIdx],
	}
}

// applyFilters narrows the snapshot listing and fills the table.
func (m *Model) applyFilters(convs []models.Conversation) {
	convs = filter.Conversations(convs, m.currentFilter())
	m.convs = convs

	rows := make([]table.Row, 0, len(convs))
	for _, c := range convs {
		rows = append(rows, table.Row{
			models.FormatDate(c.CreatedAt),
			c.ShortUserID(),
			strconv.Itoa(c.MessageCount()),
			c.TitleOrPlaceholder(),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func (m *Model) convForRow(idx int) *models.Conversation {
	if idx < 0 || idx >= len(m.convs) {
		return nil
	}
	c := m.convs[idx]
	return &c
}

// SetSize sets the available size for the conversations tab.
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
	if m.selected != nil {
		return []key.Binding{m.keys.Export, m.keys.Escape}
	}
	return []key.Binding{
		m.keys.Enter,
		m.keys.Filter,
		m.keys.MinMessages,
		m.keys.Export,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Enter, m.keys.Filter},
		{m.keys.MinMessages, m.keys.Export},
		{m.keys.Escape},
	}
}
