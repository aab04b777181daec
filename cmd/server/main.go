package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fotline/internal/config"
	"fotline/internal/handler"
	"fotline/internal/notify"
	"fotline/internal/pipeline"
	"fotline/internal/router"
	"fotline/internal/runstate"
)

// The server exposes the operator surface: trigger a run on demand, inspect
// the latest run record, download the report artifacts.
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	// Initialize run state store and notification transport
	store := runstate.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	notifier := notify.NewNotifier(notify.NewSMTPSender(cfg))

	// Initialize runner and handlers
	runner := pipeline.NewRunner(cfg, notifier, store)
	runHandler := handler.NewRunHandler(runner, store)
	reportHandler := handler.NewReportHandler(cfg.ReportFile, cfg.CSVFile)

	router.Register(e, cfg, runHandler, reportHandler)

	log.Printf("listening on :%s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
