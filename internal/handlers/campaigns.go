package handlers

import (
	"net/http"

	"github.com/GiorgiUbiria/donation_platform/internal/httputil"
	"github.com/GiorgiUbiria/donation_platform/internal/ledger"
	"github.com/GiorgiUbiria/donation_platform/internal/middleware"
	"github.com/GiorgiUbiria/donation_platform/internal/models"
	"github.com/GiorgiUbiria/donation_platform/internal/services"
)

// ListCampaigns godoc
// @Summary  List campaigns, newest first
// @Tags     campaigns
// @Produce  json
// @Param    category_id query int    false "filter by category"
// @Param    user_id     query int    false "filter by owner"
// @Param    status      query string false "active, completed or cancelled"
// @Param    page        query int    false "page number"   default(1)
// @Param    limit       query int    false "page size"     default(10)
// @Success  200 {object} httputil.ListResponse
// @Failure  400 {object} httputil.ErrorResponse
// @Router   /campaigns [get]
func (h *Handler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	page, err := httputil.PageFromQuery(r)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	var f services.CampaignFilter
	if f.CategoryID, err = httputil.QueryID(r, "category_id"); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	if f.OwnerID, err = httputil.QueryID(r, "user_id"); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	f.Status = models.CampaignStatus(r.URL.Query().Get("status"))

	res, err := h.campaigns.List(r.Context(), f, page)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteList(w, res)
}

// GetCampaign godoc
// @Summary  Campaign details
// @Tags     campaigns
// @Produce  json
// @Param    id path int true "campaign id"
// @Success  200 {object} httputil.DataResponse
// @Failure  404 {object} httputil.ErrorResponse
// @Router   /campaigns/{id} [get]
func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	campaign, err := h.campaigns.Get(r.Context(), id)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, campaign)
}

// CreateCampaign godoc
// @Summary   Start a campaign
// @Tags      campaigns
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body body services.CampaignInput true "campaign"
// @Success   201 {object} httputil.DataResponse
// @Failure   400 {object} httputil.ErrorResponse
// @Router    /campaigns [post]
func (h *Handler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var in services.CampaignInput
	if err := httputil.DecodeJSON(w, r, &in); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	campaign, err := h.campaigns.Create(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, campaign)
}

// UpdateCampaign godoc
// @Summary   Edit a campaign or change its status
// @Tags      campaigns
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id   path int                    true "campaign id"
// @Param     body body services.CampaignPatch true "fields to change"
// @Success   200 {object} httputil.DataResponse
// @Failure   403 {object} httputil.ErrorResponse
// @Failure   422 {object} httputil.ErrorResponse
// @Router    /campaigns/{id} [put]
func (h *Handler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	var patch services.CampaignPatch
	if err := httputil.DecodeJSON(w, r, &patch); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	campaign, err := h.campaigns.Update(r.Context(), middleware.UserID(r.Context()), id, patch)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, campaign)
}

// DeleteCampaign godoc
// @Summary   Delete a campaign that has no donations
// @Tags      campaigns
// @Security  BearerAuth
// @Param     id path int true "campaign id"
// @Success   204
// @Failure   409 {object} httputil.ErrorResponse
// @Router    /campaigns/{id} [delete]
func (h *Handler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	if err := h.campaigns.Delete(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type RecomputeResponse struct {
	Campaign *models.Campaign      `json:"campaign"`
	Changed  bool                  `json:"changed"`
	From     models.CampaignStatus `json:"from"`
	To       models.CampaignStatus `json:"to"`
}

func recomputeResponse(c *models.Campaign, t ledger.Transition) RecomputeResponse {
	return RecomputeResponse{Campaign: c, Changed: t.Changed(), From: t.From, To: t.To}
}

// RecomputeStatus godoc
// @Summary   Re-evaluate goal and deadline transitions now
// @Tags      campaigns
// @Produce   json
// @Security  BearerAuth
// @Param     id path int true "campaign id"
// @Success   200 {object} httputil.DataResponse
// @Failure   404 {object} httputil.ErrorResponse
// @Router    /campaigns/{id}/recompute-status [post]
func (h *Handler) RecomputeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	campaign, t, err := h.campaigns.RecomputeStatus(r.Context(), id)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, recomputeResponse(campaign, t))
}
