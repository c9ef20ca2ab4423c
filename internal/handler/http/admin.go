package http

import (
	"net/http"

	"github.com/vtab-hr/hr-backend-go/internal/domain/attendance"
	"github.com/vtab-hr/hr-backend-go/internal/handler/http/response"
)

// AdminHandler exposes manual triggers for the scheduled jobs, bypassing
// their time-of-day windows.
type AdminHandler interface {
	RunAutoClose(w http.ResponseWriter, r *http.Request)
	RunMarkAbsent(w http.ResponseWriter, r *http.Request)
}

type adminHandler struct {
	attendanceSvc attendance.AttendanceService
}

func NewAdminHandler(attendanceSvc attendance.AttendanceService) AdminHandler {
	return &adminHandler{attendanceSvc: attendanceSvc}
}

func (h *adminHandler) RunAutoClose(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceSvc.RunAutoCloseJob(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Auto-close job completed", result)
}

func (h *adminHandler) RunMarkAbsent(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceSvc.RunAbsenceMarkingJob(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Absence marking job completed", result)
}
