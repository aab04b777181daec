package router

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fotline/internal/config"
	"fotline/internal/handler"
)

// Register wires routes and middleware for the admin API.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	runHandler *handler.RunHandler,
	reportHandler *handler.ReportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	api := e.Group("/api")

	// Static-token guard for the operator surface when configured.
	if cfg.AdminToken != "" {
		api.Use(middleware.KeyAuth(func(key string, c echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(key), []byte(cfg.AdminToken)) == 1, nil
		}))
	}

	api.POST("/runs", runHandler.TriggerRun)
	api.GET("/runs/latest", runHandler.LatestRun)
	api.GET("/report", reportHandler.GetReport)
	api.GET("/report.csv", reportHandler.GetCSV)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
