package report

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"fotline/internal/model"
	"fotline/internal/repository"
)

// Artifacts points at the generated report files and the rows they cover.
type Artifacts struct {
	ReportFile  string
	CSVFile     string
	Rows        []model.ProjectPayroll
	GeneratedAt time.Time
}

// Generator renders the text report and CSV export from the payroll table.
type Generator struct {
	repo       repository.PayrollRepository
	reportFile string
	csvFile    string
	now        func() time.Time
}

// NewGenerator creates a report generator writing to the given fixed paths.
func NewGenerator(repo repository.PayrollRepository, reportFile, csvFile string) *Generator {
	return &Generator{
		repo:       repo,
		reportFile: reportFile,
		csvFile:    csvFile,
		now:        time.Now,
	}
}

// Generate re-reads the payroll table ordered by total payment descending
// and writes the text report and CSV export, overwriting any previous run's
// files. A table with zero rows still produces valid empty-body artifacts.
func (g *Generator) Generate(ctx context.Context) (*Artifacts, error) {
	rows, err := g.repo.ListByPaymentDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("read payroll table: %w", err)
	}

	generatedAt := g.now()
	if err := os.WriteFile(g.reportFile, []byte(Render(rows, generatedAt)), 0o644); err != nil {
		return nil, fmt.Errorf("write report file: %w", err)
	}
	log.Printf("report: wrote %s (%d projects)", g.reportFile, len(rows))

	if err := writeCSV(g.csvFile, rows); err != nil {
		return nil, fmt.Errorf("write csv export: %w", err)
	}
	log.Printf("report: wrote %s", g.csvFile)

	return &Artifacts{
		ReportFile:  g.reportFile,
		CSVFile:     g.csvFile,
		Rows:        rows,
		GeneratedAt: generatedAt,
	}, nil
}

// Render produces the plain-text payroll fund report.
func Render(rows []model.ProjectPayroll, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("PROJECT PAYROLL FUND REPORT\n")
	b.WriteString("====================================================\n")
	fmt.Fprintf(&b, "Analysis date: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Projects: %d\n", len(rows))
	for _, row := range rows {
		fmt.Fprintf(&b, "\nProject %d:\n", row.ProjectID)
		fmt.Fprintf(&b, "- total hours: %v\n", row.TotalHours)
		fmt.Fprintf(&b, "- total payment: %s\n", row.TotalPayment.StringFixed(2))
	}
	return b.String()
}

// writeCSV exports the rows with column order matching the table schema.
func writeCSV(path string, rows []model.ProjectPayroll) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if rows == nil {
		rows = []model.ProjectPayroll{}
	}
	return gocsv.Marshal(&rows, f)
}
