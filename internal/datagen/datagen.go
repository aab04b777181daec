package datagen

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fotline/internal/config"
	"fotline/internal/model"
	"fotline/internal/transform"
)

// Positions used by the synthetic roster and rate table.
var Positions = []string{"manager", "developer", "analyst", "designer", "qa", "hr", "support"}

// Params controls dataset synthesis.
type Params struct {
	Employees   int
	MinProjects int
	MaxProjects int
	MinHours    int
	MaxHours    int
	MinRate     int
	MaxRate     int
}

// DefaultParams mirrors the reference dataset: 100 employees working on 1-3
// projects each for 5-40 hours, with hourly rates between 20 and 100.
func DefaultParams() Params {
	return Params{
		Employees:   100,
		MinProjects: 1,
		MaxProjects: 3,
		MinHours:    5,
		MaxHours:    40,
		MinRate:     20,
		MaxRate:     100,
	}
}

// Generator synthesizes the three source datasets for test runs.
type Generator struct {
	rng    *rand.Rand
	params Params
}

// New creates a generator with a seeded random source, so tests can pin the
// output.
func New(seed int64, params Params) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed)), params: params}
}

// Employees synthesizes the roster with random positions.
func (g *Generator) Employees() []model.Employee {
	employees := make([]model.Employee, 0, g.params.Employees)
	for id := 1; id <= g.params.Employees; id++ {
		employees = append(employees, model.Employee{
			EmployeeID: id,
			Position:   Positions[g.rng.Intn(len(Positions))],
		})
	}
	return employees
}

// Rates synthesizes one hourly rate per known position.
func (g *Generator) Rates() []model.RateCard {
	rates := make([]model.RateCard, 0, len(Positions))
	for _, pos := range Positions {
		rates = append(rates, model.RateCard{
			Position:    pos,
			RatePerHour: decimal.NewFromInt(int64(g.intBetween(g.params.MinRate, g.params.MaxRate))),
		})
	}
	return rates
}

// Assignments synthesizes project hour records: every employee works on a
// random number of projects, each with its own sequential project id.
func (g *Generator) Assignments(employees []model.Employee) []model.ProjectAssignment {
	assignments := make([]model.ProjectAssignment, 0, len(employees)*g.params.MaxProjects)
	projectID := 1
	for _, e := range employees {
		n := g.intBetween(g.params.MinProjects, g.params.MaxProjects)
		for i := 0; i < n; i++ {
			assignments = append(assignments, model.ProjectAssignment{
				ProjectID:   projectID,
				EmployeeID:  e.EmployeeID,
				HoursWorked: float64(g.intBetween(g.params.MinHours, g.params.MaxHours)),
			})
			projectID++
		}
	}
	return assignments
}

// WriteAll synthesizes all three datasets and writes them to the configured
// source file locations, creating the data directory when absent.
func (g *Generator) WriteAll(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	employees := g.Employees()
	if err := writeEmployeesCSV(cfg.EmployeesFile, employees); err != nil {
		return err
	}
	log.Printf("datagen: wrote %s with %d employees", cfg.EmployeesFile, len(employees))

	rates := g.Rates()
	if err := writeRatesJSON(cfg.RatesFile, rates); err != nil {
		return err
	}
	log.Printf("datagen: wrote %s with %d positions", cfg.RatesFile, len(rates))

	assignments := g.Assignments(employees)
	if err := writeProjectsXLSX(cfg.ProjectsFile, assignments); err != nil {
		return err
	}
	log.Printf("datagen: wrote %s with %d project records", cfg.ProjectsFile, len(assignments))

	logStatistics(employees, rates, assignments)
	return nil
}

func (g *Generator) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

func writeEmployeesCSV(path string, employees []model.Employee) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.Marshal(&employees, f); err != nil {
		return fmt.Errorf("write employees csv: %w", err)
	}
	return nil
}

func writeRatesJSON(path string, rates []model.RateCard) error {
	data, err := json.MarshalIndent(rates, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rates: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write rates json: %w", err)
	}
	return nil
}

func writeProjectsXLSX(path string, assignments []model.ProjectAssignment) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]any{"project_id", "employee_id", "hours_worked"}); err != nil {
		return fmt.Errorf("write projects header: %w", err)
	}
	for i, a := range assignments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("projects row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &[]any{a.ProjectID, a.EmployeeID, a.HoursWorked}); err != nil {
			return fmt.Errorf("write projects row %d: %w", i+2, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Clean(path), err)
	}
	return nil
}

// logStatistics summarizes the generated datasets the way an operator would
// sanity-check them: position distribution, project count, mean hours and
// the grand payroll total across all projects.
func logStatistics(employees []model.Employee, rates []model.RateCard, assignments []model.ProjectAssignment) {
	byPosition := make(map[string]int)
	for _, e := range employees {
		byPosition[e.Position]++
	}
	log.Printf("datagen: %d employees", len(employees))
	for _, pos := range Positions {
		log.Printf("datagen:   %s: %d", pos, byPosition[pos])
	}

	var hours float64
	for _, a := range assignments {
		hours += a.HoursWorked
	}
	log.Printf("datagen: %d projects, mean hours %.1f",
		len(assignments), hours/float64(max(len(assignments), 1)))

	totals := transform.ProjectTotals(assignments, employees, rates)
	grand := decimal.Zero
	for _, t := range totals {
		grand = grand.Add(t.TotalPayment)
	}
	log.Printf("datagen: grand payroll total %s", grand.StringFixed(2))
}
