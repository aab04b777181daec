package datagen

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotline/internal/config"
	"fotline/internal/extract"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Load()
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.EmployeesFile = filepath.Join(cfg.DataDir, "employees.csv")
	cfg.ProjectsFile = filepath.Join(cfg.DataDir, "projects.xlsx")
	cfg.RatesFile = filepath.Join(cfg.DataDir, "rates.json")
	return cfg
}

func TestGenerator_IsDeterministicForSeed(t *testing.T) {
	a := New(42, DefaultParams()).Employees()
	b := New(42, DefaultParams()).Employees()
	assert.Equal(t, a, b)
}

func TestGenerator_Bounds(t *testing.T) {
	params := DefaultParams()
	gen := New(1, params)

	employees := gen.Employees()
	require.Len(t, employees, params.Employees)
	for _, e := range employees {
		assert.Contains(t, Positions, e.Position)
	}

	rates := gen.Rates()
	require.Len(t, rates, len(Positions))
	for _, r := range rates {
		assert.GreaterOrEqual(t, r.RatePerHour.IntPart(), int64(params.MinRate))
		assert.LessOrEqual(t, r.RatePerHour.IntPart(), int64(params.MaxRate))
	}

	assignments := gen.Assignments(employees)
	seen := make(map[int]bool, len(assignments))
	for _, a := range assignments {
		assert.False(t, seen[a.ProjectID], "project ids must be unique")
		seen[a.ProjectID] = true
		assert.GreaterOrEqual(t, a.HoursWorked, float64(params.MinHours))
		assert.LessOrEqual(t, a.HoursWorked, float64(params.MaxHours))
	}
	assert.GreaterOrEqual(t, len(assignments), params.Employees*params.MinProjects)
	assert.LessOrEqual(t, len(assignments), params.Employees*params.MaxProjects)
}

func TestWriteAll_RoundTripsThroughExtractors(t *testing.T) {
	cfg := testConfig(t)
	params := Params{
		Employees:   10,
		MinProjects: 1,
		MaxProjects: 2,
		MinHours:    5,
		MaxHours:    40,
		MinRate:     20,
		MaxRate:     100,
	}

	require.NoError(t, New(7, params).WriteAll(cfg))

	employees, err := extract.Employees(cfg.EmployeesFile)
	require.NoError(t, err)
	assert.Len(t, employees, params.Employees)

	rates, err := extract.Rates(cfg.RatesFile)
	require.NoError(t, err)
	assert.Len(t, rates, len(Positions))

	assignments, err := extract.Projects(cfg.ProjectsFile)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(assignments), params.Employees)
	for _, a := range assignments {
		assert.GreaterOrEqual(t, a.EmployeeID, 1)
		assert.LessOrEqual(t, a.EmployeeID, params.Employees)
	}
}
