package handlers

import (
	"net/http"

	"github.com/GiorgiUbiria/donation_platform/internal/httputil"
	"github.com/GiorgiUbiria/donation_platform/internal/middleware"
	"github.com/GiorgiUbiria/donation_platform/internal/services"
)

// Donate godoc
// @Summary   Donate to an active campaign
// @Tags      donations
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id   path int                    true "campaign id"
// @Param     body body services.DonationInput true "donation"
// @Success   201 {object} httputil.DataResponse
// @Failure   400 {object} httputil.ErrorResponse
// @Failure   404 {object} httputil.ErrorResponse
// @Failure   422 {object} httputil.ErrorResponse
// @Router    /campaigns/{id}/donations [post]
func (h *Handler) Donate(w http.ResponseWriter, r *http.Request) {
	campaignID, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	var in services.DonationInput
	if err := httputil.DecodeJSON(w, r, &in); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	receipt, err := h.donations.Create(r.Context(), middleware.UserID(r.Context()), campaignID, in)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, receipt)
}

// ListCampaignDonations godoc
// @Summary  Donations made to a campaign
// @Tags     donations
// @Produce  json
// @Param    id    path  int true  "campaign id"
// @Param    page  query int false "page number"
// @Param    limit query int false "page size"
// @Success  200 {object} httputil.ListResponse
// @Router   /campaigns/{id}/donations [get]
func (h *Handler) ListCampaignDonations(w http.ResponseWriter, r *http.Request) {
	campaignID, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	page, err := httputil.PageFromQuery(r)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	res, err := h.donations.ListByCampaign(r.Context(), campaignID, page)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteList(w, res)
}

func (h *Handler) DonationStats(w http.ResponseWriter, r *http.Request) {
	campaignID, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	stats, err := h.donations.Stats(r.Context(), campaignID)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, stats)
}

// MyDonations godoc
// @Summary   Donations made by the caller
// @Tags      donations
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} httputil.ListResponse
// @Router    /donations/mine [get]
func (h *Handler) MyDonations(w http.ResponseWriter, r *http.Request) {
	page, err := httputil.PageFromQuery(r)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	res, err := h.donations.ListByDonor(r.Context(), middleware.UserID(r.Context()), page)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteList(w, res)
}

func (h *Handler) GetDonation(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	donation, err := h.donations.Get(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, donation)
}
