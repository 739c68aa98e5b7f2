package services

import (
	"context"
	"time"

	"fitness-mission-system/models"
)

// MissionStore is the data-store collaborator the generator runs against.
// The production implementation is NhostClient; tests substitute a fake.
// All persistence (schema, transactional semantics of the bulk insert) is
// owned by the backend behind this interface.
type MissionStore interface {
	// ListUsersWithStats returns every user paired with their stats record,
	// nil Stats included.
	ListUsersWithStats(ctx context.Context) ([]models.UserWithStats, error)

	// ListActiveMissions returns the user's incomplete missions of the given
	// period type whose due date is notDueBefore or later.
	ListActiveMissions(ctx context.Context, userID string, pt models.PeriodType, notDueBefore time.Time) ([]models.ActiveMission, error)

	// ListEligibleTemplates returns catalog templates matching the rank and
	// level, excluding the given template ids. Filtering is server-side.
	ListEligibleTemplates(ctx context.Context, rank string, level int, excludedTemplateIDs []string) ([]models.MissionTemplate, error)

	// BulkInsertMissions persists all records in a single call and returns
	// the number of rows inserted.
	BulkInsertMissions(ctx context.Context, records []models.MissionRecord) (int, error)
}
