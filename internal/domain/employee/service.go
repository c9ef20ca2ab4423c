package employee

import "context"

// EmployeeService exposes master-data operations.
type EmployeeService interface {
	List(ctx context.Context) ([]EmployeeResponse, error)
	Get(ctx context.Context, employeeID string) (EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	BulkCreate(ctx context.Context, req BulkCreateEmployeesRequest) (BulkCreateResult, error)
	Update(ctx context.Context, employeeID string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, employeeID string) error
}
