package transform

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"fotline/internal/model"
)

// MergedRow is one project assignment left-joined against the roster and the
// rate table. Position is invalid when the employee is absent from the
// roster; Rate and Payment are invalid when either join found no match.
type MergedRow struct {
	ProjectID   int
	EmployeeID  int
	HoursWorked float64
	Position    sql.NullString
	Rate        decimal.NullDecimal
	Payment     decimal.NullDecimal
}

// ProjectTotal is the aggregated payroll fund for one project.
type ProjectTotal struct {
	ProjectID    int
	TotalHours   float64
	TotalPayment decimal.Decimal
}

// Merge left-joins assignments to the roster on employee_id and the result
// to the rate table on position. Every assignment is kept regardless of join
// success, and Payment = HoursWorked x RatePerHour when both joins matched.
func Merge(assignments []model.ProjectAssignment, employees []model.Employee, rates []model.RateCard) []MergedRow {
	positionByEmployee := make(map[int]string, len(employees))
	for _, e := range employees {
		positionByEmployee[e.EmployeeID] = e.Position
	}
	rateByPosition := make(map[string]decimal.Decimal, len(rates))
	for _, r := range rates {
		rateByPosition[r.Position] = r.RatePerHour
	}

	rows := make([]MergedRow, 0, len(assignments))
	for _, a := range assignments {
		row := MergedRow{
			ProjectID:   a.ProjectID,
			EmployeeID:  a.EmployeeID,
			HoursWorked: a.HoursWorked,
		}
		if pos, ok := positionByEmployee[a.EmployeeID]; ok {
			row.Position = sql.NullString{String: pos, Valid: true}
			if rate, ok := rateByPosition[pos]; ok {
				row.Rate = decimal.NullDecimal{Decimal: rate, Valid: true}
				row.Payment = decimal.NullDecimal{
					Decimal: rate.Mul(decimal.NewFromFloat(a.HoursWorked)),
					Valid:   true,
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Aggregate groups merged rows by project, summing hours and payments.
// Invalid payments are skipped, so an assignment whose joins missed still
// contributes its hours but nothing to the payroll fund. Output carries
// exactly one row per distinct project, ordered by first appearance.
func Aggregate(rows []MergedRow) []ProjectTotal {
	index := make(map[int]int, len(rows))
	totals := make([]ProjectTotal, 0, len(rows))
	for _, row := range rows {
		i, ok := index[row.ProjectID]
		if !ok {
			i = len(totals)
			index[row.ProjectID] = i
			totals = append(totals, ProjectTotal{ProjectID: row.ProjectID})
		}
		totals[i].TotalHours += row.HoursWorked
		if row.Payment.Valid {
			totals[i].TotalPayment = totals[i].TotalPayment.Add(row.Payment.Decimal)
		}
	}
	return totals
}

// ProjectTotals merges the three raw datasets and aggregates them in one
// pass, which is all the transform step does.
func ProjectTotals(assignments []model.ProjectAssignment, employees []model.Employee, rates []model.RateCard) []ProjectTotal {
	return Aggregate(Merge(assignments, employees, rates))
}
