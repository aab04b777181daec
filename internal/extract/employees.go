package extract

import (
	"fmt"
	"log"
	"os"

	"github.com/gocarina/gocsv"

	"fotline/internal/model"
)

// previewLimit caps how many records each extractor echoes to the log.
const previewLimit = 5

// Employees reads the full employee roster from a CSV file. Any read or
// parse error fails the whole extraction; there is no row-level tolerance.
func Employees(path string) ([]model.Employee, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open employees file: %w", err)
	}
	defer f.Close()

	var employees []model.Employee
	if err := gocsv.UnmarshalFile(f, &employees); err != nil {
		return nil, fmt.Errorf("parse employees csv %s: %w", path, err)
	}

	log.Printf("extract employees: loaded %d rows from %s", len(employees), path)
	for i, e := range employees {
		if i == previewLimit {
			break
		}
		log.Printf("extract employees: %+v", e)
	}
	return employees, nil
}
