package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vtab-hr/hr-backend-go/internal/domain/employee"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/validator"
)

type employeeService struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &employeeService{employeeRepo: employeeRepo}
}

func (s *employeeService) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToEmployeeResponse(e))
	}
	return responses, nil
}

func (s *employeeService) Get(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	normalized, ok := validator.NormalizeEmployeeID(employeeID)
	if !ok {
		return employee.EmployeeResponse{}, validator.ValidationErrors{{Field: "employee_id", Message: "employee ID is required in EMP#### format"}}
	}

	e, err := s.employeeRepo.GetByEmployeeID(ctx, normalized)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if e == nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	return employee.ToEmployeeResponse(*e), nil
}

func (s *employeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		EmployeeID:    req.EmployeeID,
		Name:          req.Name,
		Email:         req.Email,
		Department:    req.Department,
		Position:      req.Position,
		DateOfJoining: req.DateOfJoining,
		Active:        true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.EmployeeID)
	return employee.ToEmployeeResponse(created), nil
}

func (s *employeeService) BulkCreate(ctx context.Context, req employee.BulkCreateEmployeesRequest) (employee.BulkCreateResult, error) {
	if len(req.Employees) == 0 {
		return employee.BulkCreateResult{}, validator.ValidationErrors{{Field: "employees", Message: "at least one employee is required"}}
	}

	result := employee.BulkCreateResult{}
	for i, row := range req.Employees {
		if _, err := s.Create(ctx, row); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("row %d (%s): %v", i+1, row.EmployeeID, err))
			continue
		}
		result.CreatedCount++
	}

	slog.Info("Bulk employee upload finished",
		"created", result.CreatedCount, "failed", len(result.Errors))
	return result, nil
}

func (s *employeeService) Update(ctx context.Context, employeeID string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	normalized, ok := validator.NormalizeEmployeeID(employeeID)
	if !ok {
		return employee.EmployeeResponse{}, validator.ValidationErrors{{Field: "employee_id", Message: "employee ID is required in EMP#### format"}}
	}

	existing, err := s.employeeRepo.GetByEmployeeID(ctx, normalized)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if existing == nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	if err := s.employeeRepo.Update(ctx, existing.RecordID, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByEmployeeID(ctx, normalized)
	if err != nil || updated == nil {
		// The patch landed; fall back to the pre-patch view rather than
		// failing the request on the re-read.
		slog.Warn("Re-read after employee update failed", "employee_id", normalized, "error", err)
		return employee.ToEmployeeResponse(*existing), nil
	}

	slog.Info("Employee updated", "employee_id", normalized)
	return employee.ToEmployeeResponse(*updated), nil
}

func (s *employeeService) Delete(ctx context.Context, employeeID string) error {
	normalized, ok := validator.NormalizeEmployeeID(employeeID)
	if !ok {
		return validator.ValidationErrors{{Field: "employee_id", Message: "employee ID is required in EMP#### format"}}
	}

	existing, err := s.employeeRepo.GetByEmployeeID(ctx, normalized)
	if err != nil {
		return err
	}
	if existing == nil {
		return employee.ErrEmployeeNotFound
	}

	if err := s.employeeRepo.Delete(ctx, existing.RecordID); err != nil {
		return err
	}

	slog.Info("Employee deleted", "employee_id", normalized)
	return nil
}
