// Package handlers adapts HTTP requests to the services. Handlers read the
// caller's identity from the request context and pass it on explicitly.
package handlers

import (
	"context"
	"net/http"

	"github.com/GiorgiUbiria/donation_platform/internal/httputil"
	"github.com/GiorgiUbiria/donation_platform/internal/services"
)

type Services struct {
	Auth       *services.AuthService
	Campaigns  *services.CampaignService
	Donations  *services.DonationService
	Categories *services.CategoryService
	Comments   *services.CommentService
}

type Handler struct {
	auth       *services.AuthService
	campaigns  *services.CampaignService
	donations  *services.DonationService
	categories *services.CategoryService
	comments   *services.CommentService
	ping       func(context.Context) error
}

// New builds a Handler. ping backs the health check and may be nil.
func New(s Services, ping func(context.Context) error) *Handler {
	return &Handler{
		auth:       s.Auth,
		campaigns:  s.Campaigns,
		donations:  s.Donations,
		categories: s.Categories,
		comments:   s.Comments,
		ping:       ping,
	}
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Health godoc
// @Summary  Liveness and database check
// @Tags     health
// @Produce  json
// @Success  200 {object} HealthResponse
// @Failure  503 {object} HealthResponse
// @Router   /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
