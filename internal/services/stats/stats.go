// Package stats computes snapshot-wide aggregates for the overview
// screen. All functions are pure over in-memory slices.
package stats

import (
	"sort"
	"time"

	"github.com/Nouh2/gaia-admin-tui/internal/models"
)

// Compute derives the overview aggregates from the current snapshots.
// Users without a plan are counted under "unknown", merged with any
// stored "unknown" value.
func Compute(users []models.User, convs []models.Conversation) models.OverviewStats {
	s := models.OverviewStats{
		TotalUsers:         len(users),
		TotalConversations: len(convs),
		PlanCounts:         make(map[string]int),
	}
	for _, u := range users {
		if u.IsVerified {
			s.VerifiedUsers++
		}
		s.PlanCounts[u.PlanOrUnknown()]++
	}
	for _, c := range convs {
		s.TotalMessages += len(c.Messages)
	}
	return s
}

// Recent returns the n most recently created conversations,
// creation-descending. Malformed timestamps sort last. The input
// slice is not modified.
func Recent(convs []models.Conversation, n int) []models.Conversation {
	sorted := make([]models.Conversation, len(convs))
	copy(sorted, convs)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, oki := models.ParseDate(sorted[i].CreatedAt)
		tj, okj := models.ParseDate(sorted[j].CreatedAt)
		if oki != okj {
			return oki
		}
		return ti.After(tj)
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// DailyVolume buckets conversation creations per calendar day (UTC)
// over the trailing window ending at end. Days with no conversations
// appear with a zero count so the chart has a continuous x axis.
// Conversations with unparseable timestamps are skipped.
func DailyVolume(convs []models.Conversation, days int, end time.Time) []models.VolumePoint {
	if days <= 0 {
		return nil
	}
	last := end.UTC().Truncate(24 * time.Hour)
	first := last.AddDate(0, 0, -(days - 1))

	counts := make(map[string]int)
	for _, c := range convs {
		t, ok := models.ParseDate(c.CreatedAt)
		if !ok {
			continue
		}
		day := t.UTC().Truncate(24 * time.Hour)
		if day.Before(first) || day.After(last) {
			continue
		}
		counts[day.Format("2006-01-02")]++
	}

	points := make([]models.VolumePoint, 0, days)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		points = append(points, models.VolumePoint{
			Day:   d,
			Count: counts[d.Format("2006-01-02")],
		})
	}
	return points
}
