package models

import "time"

// RunState tracks the orchestrator through one generation run.
type RunState string

const (
	RunIdle              RunState = "idle"
	RunEnumerating       RunState = "enumerating"
	RunPerUserProcessing RunState = "per_user_processing"
	RunWriting           RunState = "writing"
	RunDone              RunState = "done"
	RunFailed            RunState = "failed"
)

// OutcomeKind classifies what one user contributed to a run.
type OutcomeKind string

const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomeSkipped OutcomeKind = "skipped"
	OutcomeFailed  OutcomeKind = "failed"
)

// UserOutcome is the per-user result record aggregated into the run summary.
// A success with zero prepared missions means the user simply had no eligible
// templates this run.
type UserOutcome struct {
	UserID           string      `json:"user_id"`
	Kind             OutcomeKind `json:"kind"`
	Reason           string      `json:"reason,omitempty"`
	Error            string      `json:"error,omitempty"`
	MissionsPrepared int         `json:"missions_prepared"`
}

// RunSummary is the per-run report surfaced to the invoker. UsersSkipped
// counts both users without stats and users whose reads failed mid-run.
type RunSummary struct {
	RunID            string        `json:"run_id"`
	PeriodType       PeriodType    `json:"period_type"`
	State            RunState      `json:"state"`
	StartedAt        time.Time     `json:"started_at"`
	FinishedAt       time.Time     `json:"finished_at"`
	UsersProcessed   int           `json:"users_processed"`
	UsersSkipped     int           `json:"users_skipped"`
	MissionsPrepared int           `json:"missions_prepared"`
	MissionsInserted int           `json:"missions_inserted"`
	FatalError       string        `json:"fatal_error,omitempty"`
	Outcomes         []UserOutcome `json:"outcomes,omitempty"`
}
