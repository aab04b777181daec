package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fotline/internal/model"
)

// MockPayrollRepository is a mock implementation of PayrollRepository.
type MockPayrollRepository struct {
	mock.Mock
}

func (m *MockPayrollRepository) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPayrollRepository) ReplaceAll(ctx context.Context, rows []model.ProjectPayroll) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockPayrollRepository) ListByPaymentDesc(ctx context.Context) ([]model.ProjectPayroll, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectPayroll), args.Error(1)
}

func (m *MockPayrollRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestGenerator(t *testing.T, rows []model.ProjectPayroll) (*Generator, string, string) {
	t.Helper()
	dir := t.TempDir()
	reportFile := filepath.Join(dir, "report.txt")
	csvFile := filepath.Join(dir, "data.csv")

	repo := new(MockPayrollRepository)
	repo.On("ListByPaymentDesc", mock.Anything).Return(rows, nil)

	gen := NewGenerator(repo, reportFile, csvFile)
	gen.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	}
	return gen, reportFile, csvFile
}

func TestGenerate(t *testing.T) {
	rows := []model.ProjectPayroll{
		{ID: 1, ProjectID: 1, TotalHours: 10, TotalPayment: decimal.NewFromInt(500)},
		{ID: 2, ProjectID: 3, TotalHours: 8, TotalPayment: decimal.NewFromInt(400)},
	}
	gen, reportFile, csvFile := newTestGenerator(t, rows)

	art, err := gen.Generate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, reportFile, art.ReportFile)
	assert.Equal(t, csvFile, art.CSVFile)
	assert.Len(t, art.Rows, 2)

	text, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	assert.Contains(t, string(text), "Analysis date: 2025-06-01 12:30:00")
	assert.Contains(t, string(text), "Projects: 2")
	assert.Contains(t, string(text), "Project 1:")
	assert.Contains(t, string(text), "- total payment: 500.00")
	assert.Contains(t, string(text), "Project 3:")

	csvData, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,project_id,total_hours,total_payment,analysis_date", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,1,10,500"))
}

func TestGenerate_ZeroRowsStillProducesArtifacts(t *testing.T) {
	gen, reportFile, csvFile := newTestGenerator(t, []model.ProjectPayroll{})

	art, err := gen.Generate(context.Background())

	require.NoError(t, err)
	assert.Empty(t, art.Rows)

	text, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	assert.Contains(t, string(text), "Projects: 0")

	csvData, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.Equal(t, "id,project_id,total_hours,total_payment,analysis_date",
		strings.TrimSpace(string(csvData)))
}

func TestGenerate_RepositoryErrorPropagates(t *testing.T) {
	repo := new(MockPayrollRepository)
	repo.On("ListByPaymentDesc", mock.Anything).Return(nil, assert.AnError)

	dir := t.TempDir()
	gen := NewGenerator(repo, filepath.Join(dir, "r.txt"), filepath.Join(dir, "d.csv"))

	_, err := gen.Generate(context.Background())

	assert.Error(t, err)
}
