package model

// ProjectAssignment is one employee-project pairing from the hours
// spreadsheet.
type ProjectAssignment struct {
	ProjectID   int     `json:"project_id"`
	EmployeeID  int     `json:"employee_id"`
	HoursWorked float64 `json:"hours_worked"`
}
