package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/vtab-hr/hr-backend-go/internal/domain/auth"
	"github.com/vtab-hr/hr-backend-go/internal/handler/http/response"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandler struct {
	authSvc auth.AuthService
	jwtSvc  jwt.Service
}

func NewAuthHandler(authSvc auth.AuthService, jwtSvc jwt.Service) AuthHandler {
	return &authHandler{authSvc: authSvc, jwtSvc: jwtSvc}
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, refreshToken, refreshExpiresAt, err := h.authSvc.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtSvc.RefreshTokenCookie(refreshToken, refreshExpiresAt))
	response.Success(w, resp)
}

func (h *authHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.Unauthorized(w, "Missing refresh token")
		return
	}

	resp, err := h.authSvc.Refresh(r.Context(), cookie.Value)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if raw := jwtauth.TokenFromHeader(r); raw != "" {
		if err := h.authSvc.Logout(r.Context(), raw); err != nil {
			response.HandleError(w, err)
			return
		}
	}
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		_ = h.authSvc.Logout(r.Context(), cookie.Value)
	}

	response.SuccessWithMessage(w, "Logged out", nil)
}
