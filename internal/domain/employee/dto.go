package employee

import (
	"github.com/vtab-hr/hr-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeID    string `json:"employee_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	Position      string `json:"position"`
	DateOfJoining string `json:"date_of_joining"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	normalized, ok := validator.NormalizeEmployeeID(r.EmployeeID)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee ID is required in EMP#### format",
		})
	} else {
		r.EmployeeID = normalized
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.Email != "" && !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email address",
		})
	}

	if r.DateOfJoining != "" {
		if _, ok := validator.IsValidDate(r.DateOfJoining); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_of_joining",
				Message: "date of joining must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest patches only the fields present.
type UpdateEmployeeRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Department    *string `json:"department"`
	Position      *string `json:"position"`
	DateOfJoining *string `json:"date_of_joining"`
	Active        *bool   `json:"active"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email address",
		})
	}

	if r.DateOfJoining != nil && *r.DateOfJoining != "" {
		if _, ok := validator.IsValidDate(*r.DateOfJoining); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_of_joining",
				Message: "date of joining must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkCreateEmployeesRequest carries a CSV-style batch of new employees.
type BulkCreateEmployeesRequest struct {
	Employees []CreateEmployeeRequest `json:"employees"`
}

// BulkCreateResult reports per-row outcomes; one bad row never aborts the
// batch.
type BulkCreateResult struct {
	CreatedCount int      `json:"created_count"`
	Errors       []string `json:"errors,omitempty"`
}

type EmployeeResponse struct {
	EmployeeID    string `json:"employee_id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Department    string `json:"department,omitempty"`
	Position      string `json:"position,omitempty"`
	DateOfJoining string `json:"date_of_joining,omitempty"`
	Active        bool   `json:"active"`
}

func ToEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:    e.EmployeeID,
		Name:          e.Name,
		Email:         e.Email,
		Department:    e.Department,
		Position:      e.Position,
		DateOfJoining: e.DateOfJoining,
		Active:        e.Active,
	}
}
