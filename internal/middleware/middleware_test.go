package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/GiorgiUbiria/donation_platform/internal/auth"
	"github.com/GiorgiUbiria/donation_platform/internal/httputil"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(strconv.FormatUint(UserID(r.Context()), 10)))
}

func TestAuthenticated(t *testing.T) {
	tokens := auth.NewTokens("0123456789abcdef", "test", time.Hour, nil)
	other := auth.NewTokens("fedcba9876543210", "test", time.Hour, nil)
	valid, _, err := tokens.Issue(42, "a@b.c", "Ana")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	forged, _, _ := other.Issue(42, "a@b.c", "Ana")

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, ""},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized, ""},
		{"valid", "Bearer " + valid, http.StatusOK, "42"},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, "42"},
	}
	h := Authenticated(tokens)(http.HandlerFunc(echoUser))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if tt.status == http.StatusOK {
				if rec.Body.String() != tt.body {
					t.Fatalf("expected user %s, got %s", tt.body, rec.Body.String())
				}
				return
			}
			var resp httputil.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != "unauthorized" || resp.Error == "" {
				t.Fatalf("unexpected error body %+v", resp)
			}
		})
	}
}

func TestUserIDDefaultsToZero(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := UserID(req.Context()); id != 0 {
		t.Fatalf("expected 0, got %d", id)
	}
	if id := UserID(WithUserID(req.Context(), 7)); id != 7 {
		t.Fatalf("expected 7, got %d", id)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimw.GetReqID(r.Context())
	}))

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != incoming || rec.Header().Get(RequestIDHeader) != incoming {
		t.Fatalf("expected incoming id to be kept, got %q", seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if _, err := uuid.Parse(seen); err != nil || seen == "<script>" {
		t.Fatalf("expected a generated uuid, got %q", seen)
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("response header %q does not match %q", rec.Header().Get(RequestIDHeader), seen)
	}
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestID(AccessLog(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/campaigns", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log line, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) || fields["path"] != "/campaigns" || fields["request_id"] == "" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if entries[0].Level != zap.WarnLevel {
		t.Fatalf("expected warn level for 4xx, got %s", entries[0].Level)
	}
}
