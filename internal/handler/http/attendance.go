package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vtab-hr/hr-backend-go/internal/domain/attendance"
	"github.com/vtab-hr/hr-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	TeamMonthly(w http.ResponseWriter, r *http.Request)
}

type attendanceHandler struct {
	attendanceSvc attendance.AttendanceService
}

func NewAttendanceHandler(attendanceSvc attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandler{attendanceSvc: attendanceSvc}
}

func (h *attendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.attendanceSvc.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Checked in", resp)
}

func (h *attendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.attendanceSvc.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *attendanceHandler) Status(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	resp, err := h.attendanceSvc.GetStatus(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *attendanceHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.BadRequest(w, "Invalid year", nil)
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "Invalid month", nil)
		return
	}

	resp, err := h.attendanceSvc.GetMonthlyAttendance(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

type teamMonthRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
	Year        int      `json:"year"`
	Month       int      `json:"month"`
}

func (h *attendanceHandler) TeamMonthly(w http.ResponseWriter, r *http.Request) {
	var req teamMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if len(req.EmployeeIDs) == 0 {
		response.BadRequest(w, "employee_ids is required", nil)
		return
	}
	if req.Month < 1 || req.Month > 12 {
		response.BadRequest(w, "Invalid month", nil)
		return
	}

	resp, err := h.attendanceSvc.GetTeamMonthlyAttendance(r.Context(), req.EmployeeIDs, req.Year, req.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
