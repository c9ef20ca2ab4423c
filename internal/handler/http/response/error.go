package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vtab-hr/hr-backend-go/internal/domain/asset"
	"github.com/vtab-hr/hr-backend-go/internal/domain/attendance"
	"github.com/vtab-hr/hr-backend-go/internal/domain/auth"
	"github.com/vtab-hr/hr-backend-go/internal/domain/employee"
	"github.com/vtab-hr/hr-backend-go/internal/domain/leave"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/dataverse"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A failure inside the record store is the upstream's, not ours.
	var statusErr *dataverse.StatusError
	if errors.As(err, &statusErr) {
		BadGateway(w, fmt.Sprintf("Record store error (status %d)", statusErr.StatusCode))
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Employee already has an open session")
	case errors.Is(err, attendance.ErrNoActiveSession):
		NotFound(w, "No active session to check out")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountLocked):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Asset domain errors
	case errors.Is(err, asset.ErrAssetNotFound):
		NotFound(w, "Asset not found")
	case errors.Is(err, asset.ErrAssetAlreadyExists):
		Conflict(w, "Asset ID already exists")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
