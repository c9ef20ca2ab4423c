package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtab-hr/hr-backend-go/internal/domain/employee"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/validator"
)

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee // keyed by EmployeeID
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]*employee.Employee)}
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if e, ok := f.employees[employeeID]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	e.RecordID = "rec-" + e.EmployeeID
	copied := e
	f.employees[e.EmployeeID] = &copied
	return e, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, recordID string, req employee.UpdateEmployeeRequest) error {
	for _, e := range f.employees {
		if e.RecordID != recordID {
			continue
		}
		if req.Name != nil {
			e.Name = *req.Name
		}
		if req.Department != nil {
			e.Department = *req.Department
		}
		return nil
	}
	return employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, recordID string) error {
	for id, e := range f.employees {
		if e.RecordID == recordID {
			delete(f.employees, id)
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ActiveEmployeeIDs(ctx context.Context) ([]string, error) {
	var out []string
	for id, e := range f.employees {
		if e.Active {
			out = append(out, id)
		}
	}
	return out, nil
}

func TestBulkCreateMixedRows(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)
	ctx := context.Background()

	result, err := svc.BulkCreate(ctx, employee.BulkCreateEmployeesRequest{
		Employees: []employee.CreateEmployeeRequest{
			{EmployeeID: "EMP0001", Name: "Asha Nair"},
			{EmployeeID: "", Name: "No ID"},
			{EmployeeID: "7", Name: "Ravi Kumar"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.CreatedCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 2")

	// Bare numeric IDs land normalized.
	assert.Contains(t, repo.employees, "EMP0007")
}

func TestBulkCreateEmptyBatch(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	_, err := svc.BulkCreate(context.Background(), employee.BulkCreateEmployeesRequest{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "employees")
}

func TestUpdateEmployeeNotFound(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	name := "Renamed"
	_, err := svc.Update(context.Background(), "EMP0042", employee.UpdateEmployeeRequest{Name: &name})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
