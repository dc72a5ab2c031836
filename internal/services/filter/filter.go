// Package filter narrows and searches in-memory snapshots. Every
// function preserves the input ordering and never modifies its input.
package filter

import (
	"sort"
	"strings"

	"github.com/Nouh2/gaia-admin-tui/internal/models"
)

// Tristate is an optional boolean criterion.
type Tristate int

const (
	Any Tristate = iota
	Yes
	No
)

func (t Tristate) matches(b bool) bool {
	switch t {
	case Yes:
		return b
	case No:
		return !b
	default:
		return true
	}
}

// UserFilter selects users. Zero value matches everything. Plan
// matches against the normalized plan, so Plan "unknown" selects
// users with a missing plan too.
type UserFilter struct {
	Plan     string
	Verified Tristate
}

// ConversationFilter selects conversations. Zero value matches
// everything.
type ConversationFilter struct {
	TitleQuery  string
	MinMessages int
}

// Users returns the users matching f, in input order.
func Users(users []models.User, f UserFilter) []models.User {
	var out []models.User
	for _, u := range users {
		if f.Plan != "" && u.PlanOrUnknown() != f.Plan {
			continue
		}
		if !f.Verified.matches(u.IsVerified) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Conversations returns the conversations matching f, in input order.
// The title query is a case-insensitive substring match against the
// display title.
func Conversations(convs []models.Conversation, f ConversationFilter) []models.Conversation {
	query := strings.ToLower(f.TitleQuery)
	var out []models.Conversation
	for _, c := range convs {
		if f.MinMessages > 0 && len(c.Messages) < f.MinMessages {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(c.TitleOrPlaceholder()), query) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// SearchMessages returns the conversations where any message body
// contains term, case-insensitively. An empty term matches nothing.
// Scanning a conversation stops at its first matching message.
func SearchMessages(convs []models.Conversation, term string) []models.Conversation {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var out []models.Conversation
	for _, c := range convs {
		for _, m := range c.Messages {
			if strings.Contains(strings.ToLower(m.Content), term) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// UsersByEmail returns the users whose email contains term,
// case-insensitively. An empty term matches nothing.
func UsersByEmail(users []models.User, term string) []models.User {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var out []models.User
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Email), term) {
			out = append(out, u)
		}
	}
	return out
}

// UsersByID returns every user whose id equals id. No uniqueness is
// assumed; the usual result is zero or one match.
func UsersByID(users []models.User, id string) []models.User {
	var out []models.User
	for _, u := range users {
		if u.ID == id {
			out = append(out, u)
		}
	}
	return out
}

// ConversationsByID returns every conversation whose id equals id. No
// uniqueness is assumed; the usual result is zero or one match.
func ConversationsByID(convs []models.Conversation, id string) []models.Conversation {
	var out []models.Conversation
	for _, c := range convs {
		if c.ID == id {
			out = append(out, c)
		}
	}
	return out
}

// Plans returns the distinct normalized plan names present in the
// snapshot, sorted, for populating the plan filter choices.
func Plans(users []models.User) []string {
	seen := make(map[string]struct{})
	for _, u := range users {
		seen[u.PlanOrUnknown()] = struct{}{}
	}
	plans := make([]string, 0, len(seen))
	for p := range seen {
		plans = append(plans, p)
	}
	sort.Strings(plans)
	return plans
}
