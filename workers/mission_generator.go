// workers/mission_generator.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"fitness-mission-system/models"
	"fitness-mission-system/services"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrEnumeration marks a failed initial user listing; nothing was written.
	ErrEnumeration = errors.New("user enumeration failed")
	// ErrWrite marks a failed bulk insert; prepared missions are discarded,
	// not retried within the same invocation.
	ErrWrite = errors.New("mission bulk insert failed")
)

const defaultMaxConcurrentUsers = 8

// MissionGenerator runs one periodic generation batch: enumerate users, fan
// out per user to build exclusion sets and select templates, then persist the
// accumulated assignments in a single bulk insert.
//
// Idempotency for back-to-back runs comes from the exclusion check against
// active missions, not from locking; serializing concurrent invocations for
// the same period type is the external scheduler's job.
type MissionGenerator struct {
	store              services.MissionStore
	clock              clockwork.Clock
	quotas             map[models.PeriodType]int
	maxConcurrentUsers int64

	// newRand makes a fresh per-user source; overridden in tests for
	// deterministic selection.
	newRand func() *rand.Rand
}

// NewMissionGenerator wires the generator. quotas maps each period type to
// the per-user mission cap for one run.
func NewMissionGenerator(store services.MissionStore, clock clockwork.Clock, quotas map[models.PeriodType]int, maxConcurrentUsers int) *MissionGenerator {
	if maxConcurrentUsers <= 0 {
		maxConcurrentUsers = defaultMaxConcurrentUsers
	}
	return &MissionGenerator{
		store:              store,
		clock:              clock,
		quotas:             quotas,
		maxConcurrentUsers: int64(maxConcurrentUsers),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Run executes one generation batch for the given period type. Per-user
// failures are recorded in the summary and never abort the run; enumeration
// and write failures do, and are returned alongside the failed summary.
func (g *MissionGenerator) Run(ctx context.Context, pt models.PeriodType) (*models.RunSummary, error) {
	now := g.clock.Now().UTC()
	summary := &models.RunSummary{
		RunID:      uuid.NewString(),
		PeriodType: pt,
		State:      models.RunIdle,
		StartedAt:  now,
	}
	quota := g.quotas[pt]
	log.Printf("[GEN] 🚀 Run %s started: type=%s quota=%d", summary.RunID, pt, quota)

	summary.State = models.RunEnumerating
	users, err := g.store.ListUsersWithStats(ctx)
	if err != nil {
		return g.fail(summary, fmt.Errorf("%w: %v", ErrEnumeration, err))
	}
	log.Printf("[GEN] Found %d users to process", len(users))

	summary.State = models.RunPerUserProcessing
	var (
		mu    sync.Mutex
		batch []models.MissionRecord
	)
	outcomes := make([]models.UserOutcome, len(users))
	sem := semaphore.NewWeighted(g.maxConcurrentUsers)
	grp, grpCtx := errgroup.WithContext(ctx)
	for i, user := range users {
		i, user := i, user
		grp.Go(func() error {
			if err := sem.Acquire(grpCtx, 1); err != nil {
				outcomes[i] = models.UserOutcome{UserID: user.ID, Kind: models.OutcomeFailed, Error: err.Error()}
				return nil
			}
			defer sem.Release(1)

			outcome, records := g.processUser(grpCtx, user, pt, now, quota)
			outcomes[i] = outcome
			if len(records) > 0 {
				mu.Lock()
				batch = append(batch, records...)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = grp.Wait()

	for _, o := range outcomes {
		if o.Kind == models.OutcomeSuccess {
			summary.UsersProcessed++
		} else {
			summary.UsersSkipped++
		}
	}
	summary.Outcomes = outcomes
	summary.MissionsPrepared = len(batch)

	summary.State = models.RunWriting
	if len(batch) == 0 {
		log.Printf("[GEN] No new missions needed this run")
	} else {
		log.Printf("[GEN] Inserting %d missions in one batch", len(batch))
		inserted, err := g.store.BulkInsertMissions(ctx, batch)
		if err != nil {
			return g.fail(summary, fmt.Errorf("%w: %v", ErrWrite, err))
		}
		summary.MissionsInserted = inserted
	}

	summary.State = models.RunDone
	summary.FinishedAt = g.clock.Now().UTC()
	g.logSummary(summary)
	return summary, nil
}

// processUser builds the mission records for one user. Any read failure makes
// the user contribute nothing this run — defaulting the exclusion set to
// empty would over-assign.
func (g *MissionGenerator) processUser(ctx context.Context, user models.UserWithStats, pt models.PeriodType, now time.Time, quota int) (models.UserOutcome, []models.MissionRecord) {
	if user.Stats == nil {
		log.Printf("[GEN] ⚠️ User %s has no stats record, skipping", user.ID)
		return models.UserOutcome{UserID: user.ID, Kind: models.OutcomeSkipped, Reason: "no stats record"}, nil
	}

	active, err := g.store.ListActiveMissions(ctx, user.ID, pt, services.StartOfDayUTC(now))
	if err != nil {
		log.Printf("[GEN] ❌ Failed to fetch active missions for user %s: %v", user.ID, err)
		return models.UserOutcome{UserID: user.ID, Kind: models.OutcomeFailed, Error: err.Error()}, nil
	}
	excluded := make([]string, 0, len(active))
	for _, m := range active {
		// Missions without a template id exclude nothing; the template id is
		// the authoritative key and titles are for logging only.
		if m.TemplateID != nil {
			excluded = append(excluded, *m.TemplateID)
		}
	}
	log.Printf("[GEN] User %s (rank=%s, level=%d): %d active %s missions, excluding %d template ids",
		user.ID, user.Stats.FitnessRank, user.Stats.Level, len(active), pt, len(excluded))

	templates, err := g.store.ListEligibleTemplates(ctx, user.Stats.FitnessRank, user.Stats.Level, excluded)
	if err != nil {
		log.Printf("[GEN] ❌ Failed to fetch eligible templates for user %s: %v", user.ID, err)
		return models.UserOutcome{UserID: user.ID, Kind: models.OutcomeFailed, Error: err.Error()}, nil
	}
	if len(templates) == 0 {
		log.Printf("[GEN] No eligible templates for user %s (rank=%s, level=%d)", user.ID, user.Stats.FitnessRank, user.Stats.Level)
		return models.UserOutcome{UserID: user.ID, Kind: models.OutcomeSuccess}, nil
	}

	selected := services.Shuffled(templates, g.newRand())
	if len(selected) > quota {
		selected = selected[:quota]
	}

	dueAt := services.DueDate(pt, now)
	records := make([]models.MissionRecord, 0, len(selected))
	for _, tpl := range selected {
		tpl := tpl
		records = append(records, models.MissionRecord{
			UserID:      user.ID,
			Title:       tpl.Name,
			Description: tpl.Description,
			PeriodType:  pt,
			XPReward:    tpl.XPReward,
			TemplateID:  &tpl.ID,
			AssignedAt:  now,
			DueAt:       dueAt,
			IsCompleted: false,
		})
	}
	log.Printf("[GEN] Prepared %d new %s missions for user %s", len(records), pt, user.ID)
	return models.UserOutcome{UserID: user.ID, Kind: models.OutcomeSuccess, MissionsPrepared: len(records)}, records
}

func (g *MissionGenerator) fail(summary *models.RunSummary, err error) (*models.RunSummary, error) {
	summary.State = models.RunFailed
	summary.FatalError = err.Error()
	summary.FinishedAt = g.clock.Now().UTC()
	g.logSummary(summary)
	return summary, err
}

// logSummary emits the one-line run report consumed by log aggregation.
func (g *MissionGenerator) logSummary(s *models.RunSummary) {
	if s.State == models.RunFailed {
		log.Printf("[GEN] ❌ Run %s failed: type=%s usersProcessed=%d usersSkipped=%d missionsInserted=%d fatal=%q",
			s.RunID, s.PeriodType, s.UsersProcessed, s.UsersSkipped, s.MissionsInserted, s.FatalError)
		return
	}
	log.Printf("[GEN] ✅ Run %s done: type=%s usersProcessed=%d usersSkipped=%d missionsInserted=%d",
		s.RunID, s.PeriodType, s.UsersProcessed, s.UsersSkipped, s.MissionsInserted)
}
