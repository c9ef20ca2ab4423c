package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vtab-hr/hr-backend-go/internal/domain/asset"
	"github.com/vtab-hr/hr-backend-go/internal/handler/http/response"
)

type AssetHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ByEmployee(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type assetHandler struct {
	assetSvc asset.AssetService
}

func NewAssetHandler(assetSvc asset.AssetService) AssetHandler {
	return &assetHandler{assetSvc: assetSvc}
}

func (h *assetHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.assetSvc.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *assetHandler) ByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	resp, err := h.assetSvc.GetByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *assetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req asset.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.assetSvc.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Asset created", resp)
}

func (h *assetHandler) Update(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetID")

	var req asset.UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.assetSvc.Update(r.Context(), assetID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Asset updated", resp)
}

func (h *assetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetID")

	if err := h.assetSvc.Delete(r.Context(), assetID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Asset deleted", nil)
}
