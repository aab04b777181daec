package main

import (
	"context"
	"log"

	"fotline/internal/config"
	"fotline/internal/notify"
	"fotline/internal/pipeline"
	"fotline/internal/runstate"
)

// The worker runs the payroll analysis pipeline exactly once and exits
// non-zero on failure. An external scheduler (cron, an orchestrator) owns
// when it is invoked.
func main() {
	log.Println("Starting payroll analysis run...")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	store := runstate.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	notifier := notify.NewNotifier(notify.NewSMTPSender(cfg))
	runner := pipeline.NewRunner(cfg, notifier, store)

	run, err := runner.Run(context.Background())
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	log.Printf("Run %s completed successfully:", run.ID)
	log.Printf("  - Projects analyzed: %d", run.Projects)
	log.Printf("  - Report: %s", cfg.ReportFile)
	log.Printf("  - CSV export: %s", cfg.CSVFile)
}
