package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fotline/internal/model"
	"fotline/internal/report"
	"fotline/internal/transform"
)

// Step names, matching the task ids of the daily analysis schedule.
const (
	StepExtractEmployees = "extract_employees"
	StepExtractProjects  = "extract_projects"
	StepExtractRates     = "extract_rates"
	StepTransform        = "transform_data"
	StepLoad             = "load_to_database"
	StepReport           = "generate_report"
	StepNotify           = "send_email_notification"
)

// Status of a run or a single step.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// StepResult records one step's outcome within a run.
type StepResult struct {
	Name       string    `json:"name"`
	Status     Status    `json:"status"`
	Attempts   int       `json:"attempts"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at,omitzero"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
}

// Run is the record of one pipeline execution.
type Run struct {
	ID         uuid.UUID    `json:"id"`
	Status     Status       `json:"status"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at,omitzero"`
	Projects   int          `json:"projects"`
	Steps      []StepResult `json:"steps"`
}

// Artifacts is the typed hand-off carried between steps of a single run.
// Each step reads the fields its predecessors filled and writes its own.
type Artifacts struct {
	RunID       uuid.UUID
	RunDate     time.Time
	Employees   []model.Employee
	Assignments []model.ProjectAssignment
	Rates       []model.RateCard
	Totals      []transform.ProjectTotal
	Loaded      int
	Report      *report.Artifacts
}

// RetryPolicy retries a failed step a fixed number of extra times with a
// fixed delay between attempts. It is applied uniformly to every step, as
// an orchestrator policy rather than per-step logic.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// Recorder receives run progress updates. Recording is observability only;
// implementations must not influence pipeline outcome.
type Recorder interface {
	RecordRun(ctx context.Context, run *Run)
}
