package handlers

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"engagementAPI/services"
)

type HealthHandler struct {
	wishService      *services.WishService
	hasAdminPassword bool
}

func NewHealthHandler(wishService *services.WishService, hasAdminPassword bool) *HealthHandler {
	return &HealthHandler{wishService: wishService, hasAdminPassword: hasAdminPassword}
}

// Test reports which secrets are present. It never touches the datastore.
func (h *HealthHandler) Test(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "API is working!",
		"env": map[string]bool{
			"hasDatabase":      h.wishService.Configured(),
			"hasAdminPassword": h.hasAdminPassword,
		},
	})
}

// Health pings the wish store.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.wishService.Ping(ctx); err != nil {
		log.WithError(err).Warn("health check failed")
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  "database connection failed",
		})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "engagement-api",
	})
}
