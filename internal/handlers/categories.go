package handlers

import (
	"net/http"

	"github.com/GiorgiUbiria/donation_platform/internal/httputil"
	"github.com/GiorgiUbiria/donation_platform/internal/middleware"
	"github.com/GiorgiUbiria/donation_platform/internal/services"
)

// ListCategories godoc
// @Summary  List categories
// @Tags     categories
// @Produce  json
// @Success  200 {object} httputil.DataResponse
// @Router   /categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, category)
}

// CreateCategory godoc
// @Summary   Create a category
// @Tags      categories
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body body services.CategoryInput true "category"
// @Success   201 {object} httputil.DataResponse
// @Failure   409 {object} httputil.ErrorResponse
// @Router    /categories [post]
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if err := httputil.DecodeJSON(w, r, &in); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	category, err := h.categories.Create(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	var patch services.CategoryPatch
	if err := httputil.DecodeJSON(w, r, &patch); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	category, err := h.categories.Update(r.Context(), middleware.UserID(r.Context()), id, patch)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, category)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IDParam(r, "id")
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	if err := h.categories.Delete(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
