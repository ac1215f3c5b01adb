// internal/proxy/handler.go
package proxy

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tamzrod/activity-status/internal/jsonx"
)

const failureMessage = "failed to fetch discord status"

// Presence is what the handler needs from the service.
type Presence interface {
	Current(ctx context.Context) (Result, error)
}

type Handler struct {
	service Presence
	log     *slog.Logger
}

func NewHandler(service Presence, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

type failureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// preflight answers CORS negotiation before any cache or upstream logic.
func (h *Handler) preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) getActivity(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Current(r.Context())
	if err != nil {
		writeFailure(w)
		return
	}

	body, err := res.Body()
	if err != nil {
		h.log.Error("proxy: encode response failed", "request_id", requestIDFromContext(r.Context()), "error", err)
		writeFailure(w)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) getHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func writeFailure(w http.ResponseWriter) {
	body, _ := jsonx.Marshal(failureResponse{Success: false, Error: failureMessage})
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(body)
}
