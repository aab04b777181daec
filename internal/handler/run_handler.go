package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fotline/internal/errors"
	"fotline/internal/pipeline"
	"fotline/internal/runstate"
)

// RunHandler triggers pipeline runs and reports their status.
type RunHandler struct {
	runner *pipeline.Runner
	store  *runstate.Store
}

// NewRunHandler creates a new run handler.
func NewRunHandler(runner *pipeline.Runner, store *runstate.Store) *RunHandler {
	return &RunHandler{runner: runner, store: store}
}

// TriggerRun executes a pipeline run and returns its record. The run is
// synchronous: the response carries the final per-step outcomes.
func (h *RunHandler) TriggerRun(c echo.Context) error {
	run, err := h.runner.Run(c.Request().Context())
	if err != nil {
		if run != nil {
			// the run executed and failed; its record carries the details
			return c.JSON(http.StatusInternalServerError, run)
		}
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, run)
}

// LatestRun returns the most recent recorded run.
func (h *RunHandler) LatestRun(c echo.Context) error {
	run := h.store.LatestRun(c.Request().Context())
	if run == nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrNoRunRecorded)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, run)
}
