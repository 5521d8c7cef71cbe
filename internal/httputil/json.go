package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/GiorgiUbiria/donation_platform/internal/apperr"
	"github.com/GiorgiUbiria/donation_platform/internal/logger"
	"github.com/GiorgiUbiria/donation_platform/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error     string              `json:"error"`
	Code      string              `json:"code"`
	Fields    []apperr.FieldError `json:"fields,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

type DataResponse struct {
	Data any `json:"data"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type ListResponse struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", zap.Error(err))
	}
}

func WriteData(w http.ResponseWriter, status int, v any) {
	WriteJSON(w, status, DataResponse{Data: v})
}

func WriteList[T any](w http.ResponseWriter, res services.PageResult[T]) {
	WriteJSON(w, http.StatusOK, ListResponse{
		Data: res.Items,
		Pagination: Pagination{
			Total:      res.Total,
			Page:       res.Page.Number,
			Limit:      res.Page.Limit,
			TotalPages: res.TotalPages(),
		},
	})
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	WriteJSON(w, status, ErrorResponse{
		Error:     msg,
		Code:      code,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// WriteAppError renders err using the apperr taxonomy. Anything outside it is
// logged and reported as an internal error without leaking details.
func WriteAppError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := Classify(err)
	resp := ErrorResponse{Code: code, RequestID: middleware.GetReqID(r.Context())}

	var appErr *apperr.Error
	if status != http.StatusInternalServerError && errors.As(err, &appErr) {
		resp.Error = appErr.Message
		if resp.Error == "" {
			resp.Error = appErr.Kind.Error()
		}
		resp.Fields = appErr.Fields
	} else {
		resp.Error = "internal server error"
		logger.Log.Error("request failed",
			zap.String("request_id", resp.RequestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	WriteJSON(w, status, resp)
}

// Classify maps an error to its HTTP status and machine readable code.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, apperr.ErrCampaignNotActive):
		return http.StatusUnprocessableEntity, "campaign_not_active"
	case errors.Is(err, apperr.ErrCampaignExpired):
		return http.StatusUnprocessableEntity, "campaign_expired"
	case errors.Is(err, apperr.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, "invalid_transition"
	}
	return http.StatusInternalServerError, "internal"
}

// DecodeJSON reads a single JSON object from the request body into dst.
// Unknown fields and trailing data are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.Validation("body", "request body must not be empty")
		case errors.As(err, &maxErr):
			return apperr.Validation("body", "request body is too large")
		default:
			return apperr.Validation("body", "invalid request body: "+err.Error())
		}
	}
	if dec.More() {
		return apperr.Validation("body", "request body must contain a single JSON object")
	}
	return nil
}

// IDParam parses a positive numeric chi URL parameter.
func IDParam(r *http.Request, name string) (uint64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(name, fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}

// QueryID parses an optional positive numeric query parameter; 0 means absent.
func QueryID(r *http.Request, name string) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(name, fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}

// PageFromQuery reads ?page and ?limit. Out of range values are clamped, but
// non numeric ones are rejected.
func PageFromQuery(r *http.Request) (services.Page, error) {
	q := r.URL.Query()
	number, err := intQuery(q.Get("page"), "page", 1)
	if err != nil {
		return services.Page{}, err
	}
	limit, err := intQuery(q.Get("limit"), "limit", services.DefaultPageLimit)
	if err != nil {
		return services.Page{}, err
	}
	return services.NewPage(number, limit), nil
}

func intQuery(raw, name string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation(name, name+" must be an integer")
	}
	return n, nil
}
