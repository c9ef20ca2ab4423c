package employee

// Employee is the master record as normalized through the resolved field
// map. The record store's column names vary by environment; this shape does
// not.
type Employee struct {
	RecordID      string
	EmployeeID    string // EMP####
	Name          string
	Email         string
	Department    string
	Position      string
	DateOfJoining string
	Active        bool
}
