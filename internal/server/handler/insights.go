// Package handler provides the HTTP handlers of the insight receiver.
package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sevigo/mamba-review/internal/core"
	"github.com/sevigo/mamba-review/internal/jobs"
	"github.com/sevigo/mamba-review/internal/metrics"
	"github.com/sevigo/mamba-review/internal/storage"
)

// MaxInsightBytes caps the size of a single insight document.
const MaxInsightBytes = 1 << 20

// InsightHandler accepts insight documents and lists stored ones.
type InsightHandler struct {
	dispatcher core.InsightDispatcher
	store      storage.Store
	logger     *slog.Logger
	now        func() time.Time
}

// NewInsightHandler creates an InsightHandler.
func NewInsightHandler(dispatcher core.InsightDispatcher, store storage.Store, logger *slog.Logger) *InsightHandler {
	return &InsightHandler{dispatcher: dispatcher, store: store, logger: logger, now: time.Now}
}

// RequireBearer rejects requests whose Authorization header is not exactly
// "Bearer <token>".
func RequireBearer(token string) func(http.Handler) http.Handler {
	want := []byte("Bearer " + token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get("Authorization"))
			if token == "" || subtle.ConstantTimeCompare(got, want) != 1 {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Receive handles POST /insights.
func (h *InsightHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxInsightBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respond(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "Payload too large"})
			return
		}
		h.respond(w, http.StatusBadRequest, map[string]string{"error": "Could not read body"})
		return
	}

	if !json.Valid(body) || strings.TrimSpace(string(body)) == "null" {
		h.respond(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	insight := &core.Insight{Payload: json.RawMessage(body), ReceivedAt: h.now().UTC()}
	if err := h.dispatcher.Dispatch(r.Context(), insight); err != nil {
		if errors.Is(err, jobs.ErrQueueFull) {
			h.logger.Warn("rejecting insight, queue is full")
			h.respond(w, http.StatusServiceUnavailable, map[string]string{"error": "Insight queue is full"})
			return
		}
		h.logger.Error("failed to dispatch insight", "error", err)
		h.respond(w, http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		return
	}

	h.respond(w, http.StatusOK, map[string]string{"status": "success", "message": "Insight received"})
}

// List handles GET /insights?limit=N.
func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	insights, err := h.store.ListInsights(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list insights", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"insights": insights})
}

func (h *InsightHandler) respond(w http.ResponseWriter, status int, body any) {
	metrics.InsightRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
