package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNoAggregates is returned when the transform stage hands the loader
	// nothing to persist. Loading an empty aggregate is a data-integrity
	// failure, not a no-op.
	ErrNoAggregates = errors.New("no aggregated payroll data to load")
	// ErrRunInProgress is returned when a pipeline run is requested while
	// another one is still executing.
	ErrRunInProgress = errors.New("a pipeline run is already in progress")
	// ErrNoRunRecorded is returned when run status is requested before any
	// pipeline run has been recorded.
	ErrNoRunRecorded = errors.New("no pipeline run recorded yet")
	// ErrReportNotReady is returned when report artifacts are requested
	// before a successful run has produced them.
	ErrReportNotReady = errors.New("report not generated yet")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors for the admin API.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrRunInProgress):
		return NewHTTPError(http.StatusConflict, err.Error(), "RUN_IN_PROGRESS")
	case errors.Is(err, ErrNoRunRecorded):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NO_RUN_RECORDED")
	case errors.Is(err, ErrReportNotReady):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REPORT_NOT_READY")
	case errors.Is(err, ErrNoAggregates):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "NO_AGGREGATES")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
