package handler

import (
	"os"

	"github.com/labstack/echo/v4"

	"fotline/internal/errors"
)

// ReportHandler serves the most recent report artifacts from their fixed
// output locations.
type ReportHandler struct {
	reportFile string
	csvFile    string
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportFile, csvFile string) *ReportHandler {
	return &ReportHandler{reportFile: reportFile, csvFile: csvFile}
}

// GetReport serves the plain-text payroll report.
func (h *ReportHandler) GetReport(c echo.Context) error {
	return serveArtifact(c, h.reportFile)
}

// GetCSV serves the CSV export.
func (h *ReportHandler) GetCSV(c echo.Context) error {
	return serveArtifact(c, h.csvFile)
}

func serveArtifact(c echo.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrReportNotReady)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.File(path)
}
