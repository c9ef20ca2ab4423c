package asset

import (
	"github.com/vtab-hr/hr-backend-go/internal/pkg/validator"
)

type CreateAssetRequest struct {
	AssetID      string `json:"asset_id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	Status       string `json:"status"`
	AssignedTo   string `json:"assigned_to"`
	EmployeeID   string `json:"employee_id"`
	AssignedOn   string `json:"assigned_on"`
}

func (r *CreateAssetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AssetID) {
		errs = append(errs, validator.ValidationError{
			Field:   "asset_id",
			Message: "asset ID is required",
		})
	}

	if validator.IsEmpty(r.AssignedTo) {
		errs = append(errs, validator.ValidationError{
			Field:   "assigned_to",
			Message: "assigned to is required",
		})
	}

	normalized, ok := validator.NormalizeEmployeeID(r.EmployeeID)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee ID is required in EMP#### format",
		})
	} else {
		r.EmployeeID = normalized
	}

	if r.AssignedOn != "" {
		if _, ok := validator.IsValidDate(r.AssignedOn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "assigned_on",
				Message: "assigned on must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAssetRequest patches only the fields present. The asset ID itself
// is the lookup key and never patched.
type UpdateAssetRequest struct {
	Name         *string `json:"name"`
	SerialNumber *string `json:"serial_number"`
	Category     *string `json:"category"`
	Location     *string `json:"location"`
	Status       *string `json:"status"`
	AssignedTo   *string `json:"assigned_to"`
	EmployeeID   *string `json:"employee_id"`
	AssignedOn   *string `json:"assigned_on"`
}

func (r *UpdateAssetRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil {
		normalized, ok := validator.NormalizeEmployeeID(*r.EmployeeID)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_id",
				Message: "employee ID is required in EMP#### format",
			})
		} else {
			*r.EmployeeID = normalized
		}
	}

	if r.AssignedOn != nil && *r.AssignedOn != "" {
		if _, ok := validator.IsValidDate(*r.AssignedOn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "assigned_on",
				Message: "assigned on must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssetResponse struct {
	AssetID      string `json:"asset_id"`
	Name         string `json:"name,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	Category     string `json:"category,omitempty"`
	Location     string `json:"location,omitempty"`
	Status       string `json:"status,omitempty"`
	AssignedTo   string `json:"assigned_to,omitempty"`
	EmployeeID   string `json:"employee_id,omitempty"`
	AssignedOn   string `json:"assigned_on,omitempty"`
}

func ToAssetResponse(a Asset) AssetResponse {
	return AssetResponse{
		AssetID:      a.AssetID,
		Name:         a.Name,
		SerialNumber: a.SerialNumber,
		Category:     a.Category,
		Location:     a.Location,
		Status:       a.Status,
		AssignedTo:   a.AssignedTo,
		EmployeeID:   a.EmployeeID,
		AssignedOn:   a.AssignedOn,
	}
}
