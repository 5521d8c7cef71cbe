package handlers

import (
	"net/http"

	"github.com/GiorgiUbiria/donation_platform/internal/httputil"
	"github.com/GiorgiUbiria/donation_platform/internal/middleware"
	"github.com/GiorgiUbiria/donation_platform/internal/services"
)

// Register godoc
// @Summary  Create an account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body services.RegisterInput true "new user"
// @Success  201 {object} httputil.DataResponse
// @Failure  400 {object} httputil.ErrorResponse
// @Failure  409 {object} httputil.ErrorResponse
// @Router   /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := httputil.DecodeJSON(w, r, &in); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	user, err := h.auth.Register(r.Context(), in)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, user)
}

// Login godoc
// @Summary  Exchange credentials for a bearer token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body services.LoginInput true "credentials"
// @Success  200 {object} httputil.DataResponse
// @Failure  401 {object} httputil.ErrorResponse
// @Router   /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := httputil.DecodeJSON(w, r, &in); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	session, err := h.auth.Login(r.Context(), in)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, session)
}

// Me godoc
// @Summary   Current user profile
// @Tags      auth
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} httputil.DataResponse
// @Failure   401 {object} httputil.ErrorResponse
// @Router    /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Me(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, user)
}
