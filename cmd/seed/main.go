package main

import (
	"log"
	"time"

	"fotline/internal/config"
	"fotline/internal/datagen"
)

// The seed command synthesizes the three source datasets (employee roster,
// project hours spreadsheet, position rate table) into the configured data
// directory, so a pipeline run has something to analyze.
func main() {
	log.Println("Starting dataset generation...")

	cfg := config.Load()
	gen := datagen.New(time.Now().UnixNano(), datagen.DefaultParams())

	if err := gen.WriteAll(cfg); err != nil {
		log.Fatalf("Failed to generate datasets: %v", err)
	}

	log.Println("All datasets generated:")
	log.Printf("  - %s (employee roster)", cfg.EmployeesFile)
	log.Printf("  - %s (project hours)", cfg.ProjectsFile)
	log.Printf("  - %s (position rates)", cfg.RatesFile)
}
