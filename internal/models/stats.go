package models

import "time"

// OverviewStats is the aggregate statistics bundle computed from the
// user and conversation snapshots.
type OverviewStats struct {
	TotalUsers         int
	VerifiedUsers      int
	TotalConversations int
	TotalMessages      int
	PlanCounts         map[string]int
}

// VolumePoint is one day of conversation-creation volume.
type VolumePoint struct {
	Day   time.Time
	Count int
}
