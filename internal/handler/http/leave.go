package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vtab-hr/hr-backend-go/internal/domain/leave"
	"github.com/vtab-hr/hr-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	OnLeaveToday(w http.ResponseWriter, r *http.Request)
	TeamLeaves(w http.ResponseWriter, r *http.Request)
}

type leaveHandler struct {
	leaveSvc leave.LeaveService
}

func NewLeaveHandler(leaveSvc leave.LeaveService) LeaveHandler {
	return &leaveHandler{leaveSvc: leaveSvc}
}

func (h *leaveHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.leaveSvc.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave applied", resp)
}

func (h *leaveHandler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	resp, err := h.leaveSvc.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *leaveHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	leaveID := chi.URLParam(r, "leaveID")

	resp, err := h.leaveSvc.Cancel(r.Context(), leaveID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave cancelled", resp)
}

func (h *leaveHandler) Balance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	leaveType := r.URL.Query().Get("type")
	if leaveType == "" {
		response.BadRequest(w, "type query parameter is required", nil)
		return
	}

	resp, err := h.leaveSvc.GetBalance(r.Context(), employeeID, leaveType)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

type employeeIDsRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
}

func (h *leaveHandler) OnLeaveToday(w http.ResponseWriter, r *http.Request) {
	// employee_ids filter is optional; absent means everyone.
	var req employeeIDsRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	resp, err := h.leaveSvc.OnLeaveToday(r.Context(), req.EmployeeIDs)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *leaveHandler) TeamLeaves(w http.ResponseWriter, r *http.Request) {
	var req employeeIDsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if len(req.EmployeeIDs) == 0 {
		response.BadRequest(w, "employee_ids is required", nil)
		return
	}

	resp, err := h.leaveSvc.TeamLeaves(r.Context(), req.EmployeeIDs)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
