package employee

import "context"

// EmployeeRepository is the record-store access contract for the employee
// master.
type EmployeeRepository interface {
	List(ctx context.Context) ([]Employee, error)

	// GetByEmployeeID returns the row for the business ID, nil when none.
	GetByEmployeeID(ctx context.Context, employeeID string) (*Employee, error)

	Create(ctx context.Context, e Employee) (Employee, error)

	// Update patches the fields present in the request, mapping them to
	// the resolved schema's columns.
	Update(ctx context.Context, recordID string, req UpdateEmployeeRequest) error

	Delete(ctx context.Context, recordID string) error

	// ActiveEmployeeIDs returns the ID set of employees flagged active.
	// Used by the absence-marking job.
	ActiveEmployeeIDs(ctx context.Context) ([]string, error)
}
