package models

import (
	"fmt"
	"strings"
	"time"
)

// PeriodType identifies the assignment cadence of a mission.
type PeriodType string

const (
	PeriodDaily    PeriodType = "DAILY"
	PeriodWeekly   PeriodType = "WEEKLY"
	PeriodSeasonal PeriodType = "SEASONAL"
)

// ParsePeriodType validates an invoker-supplied period type string.
func ParsePeriodType(s string) (PeriodType, error) {
	switch PeriodType(strings.ToUpper(strings.TrimSpace(s))) {
	case PeriodDaily:
		return PeriodDaily, nil
	case PeriodWeekly:
		return PeriodWeekly, nil
	case PeriodSeasonal:
		return PeriodSeasonal, nil
	}
	return "", fmt.Errorf("unknown period type %q (want DAILY, WEEKLY or SEASONAL)", s)
}

// ProgressionStats mirrors the user_stats row owned by the backend.
type ProgressionStats struct {
	Level       int    `json:"level"`
	FitnessRank string `json:"fitness_rank"` // backend enum: E_RANK ... S_RANK
}

// UserWithStats pairs a user id with its stats record. Stats is nil when the
// user has no stats row yet; such users are skipped by the generator.
type UserWithStats struct {
	ID    string            `json:"id"`
	Stats *ProgressionStats `json:"stat"`
}

// MissionTemplate is a catalog entry as returned by the eligible-templates
// query. Rank and level filtering happens server-side, so only the fields
// needed to build an assignment come back.
type MissionTemplate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	XPReward    int     `json:"xp_reward"`
}

// ActiveMission is the slice of a mission row needed for the exclusion check.
// TemplateID is nil for hand-authored missions (or when the template was
// retired); Title is kept for diagnostic logging only.
type ActiveMission struct {
	TemplateID *string `json:"template_id"`
	Title      string  `json:"title"`
}

// MissionRecord is the insert payload for one generated mission assignment.
type MissionRecord struct {
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	PeriodType  PeriodType `json:"period_type"`
	XPReward    int        `json:"xp_reward"`
	TemplateID  *string    `json:"template_id"`
	AssignedAt  time.Time  `json:"assigned_at"`
	DueAt       time.Time  `json:"due_at"`
	IsCompleted bool       `json:"is_completed"`
}
