package model

// Employee is one row of the employee roster. The roster is the source of
// truth for an employee's position.
type Employee struct {
	EmployeeID int    `json:"employee_id" csv:"employee_id"`
	Position   string `json:"position" csv:"position"`
}
