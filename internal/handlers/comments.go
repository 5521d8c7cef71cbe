package handlers

import (
	"net/http"

	"github.com/GiorgiUbiria/donation_platform/internal/httputil"
	"github.com/GiorgiUbiria/donation_platform/internal/middleware"
	"github.com/GiorgiUbiria/donation_platform/internal/services"
)

// CreateComment godoc
// @Summary   Comment on a campaign
// @Tags      comments
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id   path int                   true "campaign id"
// @Param     body body services.CommentInput true "comment"
// @Success   201 {object} httputil.DataResponse
// @Router    /campaigns/{id}/comments [post]
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	campaignID, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	var in services.CommentInput
	if err := httputil.DecodeJSON(w, r, &in); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	comment, err := h.comments.Create(r.Context(), middleware.UserID(r.Context()), campaignID, in)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, comment)
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
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
	res, err := h.comments.ListByCampaign(r.Context(), campaignID, page)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteList(w, res)
}

func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	comment, err := h.comments.Get(r.Context(), id)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, comment)
}

func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	var in services.CommentInput
	if err := httputil.DecodeJSON(w, r, &in); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	comment, err := h.comments.Update(r.Context(), middleware.UserID(r.Context()), id, in)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, comment)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	if err := h.comments.Delete(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
