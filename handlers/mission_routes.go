// handlers/mission_routes.go
package handlers

import (
	"fmt"
	"sync"

	"fitness-mission-system/models"
	"fitness-mission-system/workers"

	"github.com/gofiber/fiber/v2"
)

const runHistorySize = 20

// runLog keeps the most recent run summaries in memory for ops visibility.
type runLog struct {
	mu   sync.Mutex
	runs []*models.RunSummary
}

func (l *runLog) add(s *models.RunSummary) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.runs = append([]*models.RunSummary{s}, l.runs...)
	if len(l.runs) > runHistorySize {
		l.runs = l.runs[:runHistorySize]
	}
}

func (l *runLog) list() []*models.RunSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*models.RunSummary, len(l.runs))
	copy(out, l.runs)
	return out
}

// SetupMissionRoutes registers the generation webhook and the ops read
// routes. cronAuth guards the trigger only — health and run history stay
// reachable by the scheduler and dashboards.
func SetupMissionRoutes(app *fiber.App, generator *workers.MissionGenerator, cronAuth fiber.Handler) {
	history := &runLog{}

	app.Post("/missions/generate", cronAuth, func(c *fiber.Ctx) error {
		periodParam := c.Query("type")
		if periodParam == "" {
			var body struct {
				Type string `json:"type"`
			}
			if err := c.BodyParser(&body); err == nil {
				periodParam = body.Type
			}
		}

		pt, err := models.ParsePeriodType(periodParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid period type",
				"cause": err.Error(),
			})
		}

		summary, runErr := generator.Run(c.Context(), pt)
		history.add(summary)
		if runErr != nil {
			// Whole-run failure (enumeration or write); nothing new was written.
			return c.Status(fiber.StatusInternalServerError).SendString(
				fmt.Sprintf("Mission generation (%s) failed: %s", pt, runErr.Error()))
		}

		return c.SendString(fmt.Sprintf(
			"Mission generation (%s) completed successfully. Inserted %d missions for %d users (%d skipped).",
			pt, summary.MissionsInserted, summary.UsersProcessed, summary.UsersSkipped))
	})

	app.Get("/missions/runs", func(c *fiber.Ctx) error {
		return c.JSON(history.list())
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
}
