package pipeline

import (
	"context"
	"fmt"
	"log"

	"fotline/internal/db"
	"fotline/internal/errors"
	"fotline/internal/extract"
	"fotline/internal/model"
	"fotline/internal/report"
	"fotline/internal/repository"
	"fotline/internal/transform"
)

// previewLimit caps how many aggregates the transform step echoes to the log.
const previewLimit = 5

func (r *Runner) extractEmployees(ctx context.Context, art *Artifacts) error {
	employees, err := extract.Employees(r.cfg.EmployeesFile)
	if err != nil {
		return err
	}
	art.Employees = employees
	return nil
}

func (r *Runner) extractProjects(ctx context.Context, art *Artifacts) error {
	assignments, err := extract.Projects(r.cfg.ProjectsFile)
	if err != nil {
		return err
	}
	art.Assignments = assignments
	return nil
}

func (r *Runner) extractRates(ctx context.Context, art *Artifacts) error {
	rates, err := extract.Rates(r.cfg.RatesFile)
	if err != nil {
		return err
	}
	art.Rates = rates
	return nil
}

// transform joins the three datasets and aggregates totals per project.
func (r *Runner) transform(ctx context.Context, art *Artifacts) error {
	rows := transform.Merge(art.Assignments, art.Employees, art.Rates)
	totals := transform.Aggregate(rows)
	log.Printf("transform: %d assignments aggregated into %d projects", len(rows), len(totals))
	for i, t := range totals {
		if i == previewLimit {
			break
		}
		log.Printf("transform: project %d hours=%v payment=%s",
			t.ProjectID, t.TotalHours, t.TotalPayment.StringFixed(2))
	}
	art.Totals = totals
	return nil
}

// load replaces the project_fot table with the fresh aggregates. The DB
// connection is scoped to this step and released on every exit path.
func (r *Runner) load(ctx context.Context, art *Artifacts) error {
	if len(art.Totals) == 0 {
		return errors.ErrNoAggregates
	}

	gormDB, err := db.Open(r.cfg.DBDriver, r.cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	repo := repository.NewPayrollRepository(gormDB)
	if err := repo.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate project_fot: %w", err)
	}

	rows := make([]model.ProjectPayroll, 0, len(art.Totals))
	for _, t := range art.Totals {
		rows = append(rows, model.ProjectPayroll{
			ProjectID:    t.ProjectID,
			TotalHours:   t.TotalHours,
			TotalPayment: t.TotalPayment,
		})
	}
	if err := repo.ReplaceAll(ctx, rows); err != nil {
		return err
	}
	art.Loaded = len(rows)
	log.Printf("load: %d rows written to project_fot", len(rows))

	// Verification read-back, highest payroll fund first.
	verification, err := repo.ListByPaymentDesc(ctx)
	if err != nil {
		return fmt.Errorf("verify load: %w", err)
	}
	for _, row := range verification {
		log.Printf("load: project %d hours=%v payment=%s",
			row.ProjectID, row.TotalHours, row.TotalPayment.StringFixed(2))
	}
	return nil
}

// generateReport re-reads the table and writes the report artifacts.
func (r *Runner) generateReport(ctx context.Context, art *Artifacts) error {
	gormDB, err := db.Open(r.cfg.DBDriver, r.cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	gen := report.NewGenerator(
		repository.NewPayrollRepository(gormDB),
		r.cfg.ReportFile,
		r.cfg.CSVFile,
	)
	artifacts, err := gen.Generate(ctx)
	if err != nil {
		return err
	}
	art.Report = artifacts
	return nil
}

func (r *Runner) notify(ctx context.Context, art *Artifacts) error {
	return r.notifier.Notify(ctx, art.RunDate, art.Report)
}
