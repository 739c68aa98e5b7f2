// Package config loads and validates the service configuration from the
// environment. Missing required values are reported before any processing
// begins — the run never starts on a bad config.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"fitness-mission-system/models"
)

// ErrMissingEnv marks a fatal pre-run configuration failure.
var ErrMissingEnv = errors.New("missing required environment variable")

const (
	defaultPort               = 5300
	defaultDailyMissionCount  = 4
	defaultWeeklyMissionCount = 8
	defaultSeasonalCount      = 3
	defaultMaxConcurrentUsers = 8
	defaultStoreTimeoutSecs   = 30
)

// Config holds runtime settings for the mission generation service.
type Config struct {
	// BackendURL is the Nhost backend base URL (the GraphQL endpoint lives
	// under /v1/graphql).
	BackendURL string
	// AdminSecret is the elevated Hasura credential used for all store calls.
	AdminSecret string
	// CronSecret guards the generation webhook. Empty disables the guard.
	CronSecret string

	Port int

	// Quotas caps how many missions one user receives per run, per period type.
	Quotas map[models.PeriodType]int

	// MaxConcurrentUsers bounds the per-user fan-out against the store.
	MaxConcurrentUsers int
	// StoreTimeout is the HTTP timeout for every store call.
	StoreTimeout time.Duration
}

// Load reads the environment and validates it.
func Load() (*Config, error) {
	backendURL := os.Getenv("NHOST_BACKEND_URL")
	if backendURL == "" {
		return nil, fmt.Errorf("%w: NHOST_BACKEND_URL", ErrMissingEnv)
	}
	adminSecret := os.Getenv("NHOST_ADMIN_SECRET")
	if adminSecret == "" {
		return nil, fmt.Errorf("%w: NHOST_ADMIN_SECRET", ErrMissingEnv)
	}

	port, err := intEnv("PORT", defaultPort)
	if err != nil {
		return nil, err
	}
	daily, err := intEnv("DAILY_MISSION_COUNT", defaultDailyMissionCount)
	if err != nil {
		return nil, err
	}
	weekly, err := intEnv("WEEKLY_MISSION_COUNT", defaultWeeklyMissionCount)
	if err != nil {
		return nil, err
	}
	seasonal, err := intEnv("SEASONAL_MISSION_COUNT", defaultSeasonalCount)
	if err != nil {
		return nil, err
	}
	maxConcurrent, err := intEnv("MAX_CONCURRENT_USERS", defaultMaxConcurrentUsers)
	if err != nil {
		return nil, err
	}
	storeTimeout, err := intEnv("STORE_TIMEOUT_SECONDS", defaultStoreTimeoutSecs)
	if err != nil {
		return nil, err
	}

	for name, v := range map[string]int{
		"PORT":                   port,
		"DAILY_MISSION_COUNT":    daily,
		"WEEKLY_MISSION_COUNT":   weekly,
		"SEASONAL_MISSION_COUNT": seasonal,
		"MAX_CONCURRENT_USERS":   maxConcurrent,
		"STORE_TIMEOUT_SECONDS":  storeTimeout,
	} {
		if v <= 0 {
			return nil, fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}

	return &Config{
		BackendURL:  backendURL,
		AdminSecret: adminSecret,
		CronSecret:  os.Getenv("CRON_SECRET"),
		Port:        port,
		Quotas: map[models.PeriodType]int{
			models.PeriodDaily:    daily,
			models.PeriodWeekly:   weekly,
			models.PeriodSeasonal: seasonal,
		},
		MaxConcurrentUsers: maxConcurrent,
		StoreTimeout:       time.Duration(storeTimeout) * time.Second,
	}, nil
}

func intEnv(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, raw, err)
	}
	return v, nil
}
