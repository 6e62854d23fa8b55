package resources

import (
	"context"
	"net/http"
	"time"

	"github.com/cpbotha/dbwriter/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

// SystemHandlers serves the root greeting and the health check
type SystemHandlers struct {
	health HealthChecker
}

// @Summary Root
// @Description Greeting used as a liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *SystemHandlers) Root(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"data": "Hello, World!"})
}

// @Summary Health check
// @Description Reports service health and pings the storage backend
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errors.APIError
// @Router /health [get]
func (h *SystemHandlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.health.Ping(ctx); err != nil {
			respondWithError(w, r, errors.NewUnavailableError("storage backend unavailable", err))
			return
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": nuts.GetVersion()})
}
