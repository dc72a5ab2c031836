package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nouh2/gaia-admin-tui/internal/services"
	"github.com/Nouh2/gaia-admin-tui/internal/services/filter"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadInitialData returns a command that loads all initial data.
func loadInitialData(mgr *services.Manager) tea.Cmd {
	return tea.Batch(
		loadOverviewCmd(mgr),
		loadUsersCmd(mgr, filter.UserFilter{}),
		loadConversationsCmd(mgr, filter.ConversationFilter{}),
	)
}

// loadOverviewCmd returns a command that computes the overview.
func loadOverviewCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		ov, err := mgr.Overview(context.Background())
		return OverviewLoadedMsg{Overview: ov, Error: err}
	}
}

// loadUsersCmd returns a command that loads the filtered user listing.
func loadUsersCmd(mgr *services.Manager, f filter.UserFilter) tea.Cmd {
	return func() tea.Msg {
		users, err := mgr.Users(context.Background(), f)
		return UsersLoadedMsg{Users: users, Error: err}
	}
}

// loadConversationsCmd returns a command that loads the filtered
// conversation listing.
func loadConversationsCmd(mgr *services.Manager, f filter.ConversationFilter) tea.Cmd {
	return func() tea.Msg {
		convs, err := mgr.Conversations(context.Background(), f)
		return ConversationsLoadedMsg{Conversations: convs, Error: err}
	}
}

// loadUserConversationsCmd returns a command that fetches one user's
// conversations live from the store.
func loadUserConversationsCmd(mgr *services.Manager, userID string) tea.Cmd {
	return func() tea.Msg {
		convs, err := mgr.UserConversations(context.Background(), userID)
		return UserConversationsLoadedMsg{UserID: userID, Conversations: convs, Error: err}
	}
}

// searchConversationsCmd returns a command that searches message
// bodies.
func searchConversationsCmd(mgr *services.Manager, term string) tea.Cmd {
	return func() tea.Msg {
		convs, err := mgr.SearchConversations(context.Background(), term)
		return ConversationSearchResultMsg{Term: term, Conversations: convs, Error: err}
	}
}

// searchUsersCmd returns a command that searches user emails.
func searchUsersCmd(mgr *services.Manager, term string) tea.Cmd {
	return func() tea.Msg {
		users, err := mgr.SearchUsers(context.Background(), term)
		return UserSearchResultMsg{Term: term, Users: users, Error: err}
	}
}

// findUserByIDCmd returns a command that looks users up by exact id.
// A miss is an empty result, not an error toast.
func findUserByIDCmd(mgr *services.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		users, err := mgr.UsersByID(context.Background(), id)
		return UserSearchResultMsg{Term: id, Users: users, Error: err}
	}
}

// findConversationByIDCmd returns a command that looks conversations
// up by exact id.
func findConversationByIDCmd(mgr *services.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		convs, err := mgr.ConversationsByID(context.Background(), id)
		return ConversationSearchResultMsg{Term: id, Conversations: convs, Error: err}
	}
}

// exportUsersCmd returns a command that writes both user workbooks for
// the currently filtered listing.
func exportUsersCmd(mgr *services.Manager, f filter.UserFilter, emailQuery string) tea.Cmd {
	return func() tea.Msg {
		res, err := mgr.ExportUsers(context.Background(), f, emailQuery)
		return UsersExportedMsg{Result: res, Error: err}
	}
}

// exportConversationCmd returns a command that writes one
// conversation to JSON.
func exportConversationCmd(mgr *services.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		path, err := mgr.ExportConversation(context.Background(), id)
		return ConversationExportedMsg{ConversationID: id, Path: path, Error: err}
	}
}

// refreshCmd drops the snapshot cache and reloads everything.
func refreshCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.Refresh()
		return RefreshMsg{Resource: "all"}
	}
}

// cacheAgeCmd returns a command that reports the snapshot age.
func cacheAgeCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		age, ok := mgr.CacheAge()
		return CacheAgeMsg{Age: age, OK: ok}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationWarning,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// delayedCmd returns a command that sends a message after a delay.
func delayedCmd(delay time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return msg
	})
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// DefaultTick returns a tick command with the default interval.
func (c *Commands) DefaultTick() tea.Cmd {
	return defaultTickCmd()
}

// LoadInitialData returns a command that loads all initial data.
func (c *Commands) LoadInitialData() tea.Cmd {
	return loadInitialData(c.manager)
}

// LoadOverview returns a command that computes the overview.
func (c *Commands) LoadOverview() tea.Cmd {
	return loadOverviewCmd(c.manager)
}

// LoadUsers returns a command that loads the filtered user listing.
func (c *Commands) LoadUsers(f filter.UserFilter) tea.Cmd {
	return loadUsersCmd(c.manager, f)
}

// LoadConversations returns a command that loads the filtered
// conversation listing.
func (c *Commands) LoadConversations(f filter.ConversationFilter) tea.Cmd {
	return loadConversationsCmd(c.manager, f)
}

// LoadUserConversations returns a command that fetches one user's
// conversations.
func (c *Commands) LoadUserConversations(userID string) tea.Cmd {
	return loadUserConversationsCmd(c.manager, userID)
}

// SearchConversations returns a command that searches message bodies.
func (c *Commands) SearchConversations(term string) tea.Cmd {
	return searchConversationsCmd(c.manager, term)
}

// SearchUsers returns a command that searches user emails.
func (c *Commands) SearchUsers(term string) tea.Cmd {
	return searchUsersCmd(c.manager, term)
}

// FindUserByID returns a command that looks users up by exact id.
func (c *Commands) FindUserByID(id string) tea.Cmd {
	return findUserByIDCmd(c.manager, id)
}

// FindConversationByID returns a command that looks conversations up
// by exact id.
func (c *Commands) FindConversationByID(id string) tea.Cmd {
	return findConversationByIDCmd(c.manager, id)
}

// ExportUsers returns a command that writes both user workbooks for
// the currently filtered listing.
func (c *Commands) ExportUsers(f filter.UserFilter, emailQuery string) tea.Cmd {
	return exportUsersCmd(c.manager, f, emailQuery)
}

// ExportConversation returns a command that writes one conversation
// to JSON.
func (c *Commands) ExportConversation(id string) tea.Cmd {
	return exportConversationCmd(c.manager, id)
}

// Refresh returns a command that drops the snapshot cache.
func (c *Commands) Refresh() tea.Cmd {
	return refreshCmd(c.manager)
}

// CacheAge returns a command that reports the snapshot age.
func (c *Commands) CacheAge() tea.Cmd {
	return cacheAgeCmd(c.manager)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyWarningCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}

// Delayed returns a command that sends a message after a delay.
func (c *Commands) Delayed(delay time.Duration, msg tea.Msg) tea.Cmd {
	return delayedCmd(delay, msg)
}

// Batch combines multiple commands into one.
func (c *Commands) Batch(cmds ...tea.Cmd) tea.Cmd {
	return tea.Batch(cmds...)
}

// Quit returns a command that quits the application.
func (c *Commands) Quit() tea.Cmd {
	return tea.Quit
}
