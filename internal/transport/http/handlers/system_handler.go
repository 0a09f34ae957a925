package handlers

import (
	"net/http"
	"time"
)

type SystemHandler struct {
	now func() time.Time
}

func NewSystemHandler() *SystemHandler {
	return &SystemHandler{now: time.Now}
}

// Root answers GET / with a short banner.
func (h *SystemHandler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "User management API is running"})
}

func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": h.now().UTC().Format(time.RFC3339Nano),
	})
}

// Livez is a plain-text liveness probe for orchestrators.
func (h *SystemHandler) Livez(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
