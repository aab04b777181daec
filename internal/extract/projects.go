package extract

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"fotline/internal/model"
)

// Column headers expected on the first sheet of the projects spreadsheet.
const (
	colProjectID   = "project_id"
	colEmployeeID  = "employee_id"
	colHoursWorked = "hours_worked"
)

// Projects reads the project hours records from the first sheet of an xlsx
// file. The sheet must carry a header row naming project_id, employee_id and
// hours_worked; any missing column or unparsable cell fails the extraction.
func Projects(path string) ([]model.ProjectAssignment, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open projects spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read projects sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("projects sheet %q has no header row", sheet)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{colProjectID, colEmployeeID, colHoursWorked} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("projects sheet %q missing column %s", sheet, name)
		}
	}

	assignments := make([]model.ProjectAssignment, 0, len(rows)-1)
	for i, row := range rows[1:] {
		a, err := assignmentFromRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("projects row %d: %w", i+2, err)
		}
		assignments = append(assignments, a)
	}

	log.Printf("extract projects: loaded %d rows from %s", len(assignments), path)
	for i, a := range assignments {
		if i == previewLimit {
			break
		}
		log.Printf("extract projects: %+v", a)
	}
	return assignments, nil
}

func assignmentFromRow(row []string, col map[string]int) (model.ProjectAssignment, error) {
	cell := func(name string) string {
		if idx := col[name]; idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	projectID, err := strconv.Atoi(cell(colProjectID))
	if err != nil {
		return model.ProjectAssignment{}, fmt.Errorf("invalid %s: %w", colProjectID, err)
	}
	employeeID, err := strconv.Atoi(cell(colEmployeeID))
	if err != nil {
		return model.ProjectAssignment{}, fmt.Errorf("invalid %s: %w", colEmployeeID, err)
	}
	hours, err := strconv.ParseFloat(cell(colHoursWorked), 64)
	if err != nil {
		return model.ProjectAssignment{}, fmt.Errorf("invalid %s: %w", colHoursWorked, err)
	}

	return model.ProjectAssignment{
		ProjectID:   projectID,
		EmployeeID:  employeeID,
		HoursWorked: hours,
	}, nil
}
