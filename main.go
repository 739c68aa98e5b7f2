package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fitness-mission-system/config"
	"fitness-mission-system/handlers"
	"fitness-mission-system/middleware"
	"fitness-mission-system/models"
	"fitness-mission-system/services"
	"fitness-mission-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ configuration error: ", err)
	}

	store := services.NewNhostClient(cfg.BackendURL, cfg.AdminSecret, cfg.StoreTimeout)
	generator := workers.NewMissionGenerator(store, clockwork.NewRealClock(), cfg.Quotas, cfg.MaxConcurrentUsers)

	app := fiber.New()
	app.Use(cors.New())

	handlers.SetupMissionRoutes(app, generator, middleware.CronAuthMiddleware(cfg.CronSecret))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Mission generation service running on http://localhost:%d", cfg.Port)
	log.Printf("✅ Backend: %s (daily=%d weekly=%d seasonal=%d, max %d concurrent users)",
		cfg.BackendURL,
		cfg.Quotas[models.PeriodDaily], cfg.Quotas[models.PeriodWeekly], cfg.Quotas[models.PeriodSeasonal],
		cfg.MaxConcurrentUsers)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
