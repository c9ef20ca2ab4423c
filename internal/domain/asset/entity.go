package asset

// Asset is a piece of company equipment tracked in the record store,
// optionally assigned to an employee.
type Asset struct {
	RecordID     string
	AssetID      string
	Name         string
	SerialNumber string
	Category     string
	Location     string
	Status       string
	AssignedTo   string
	EmployeeID   string
	AssignedOn   string
}
