package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"engagementAPI/internal/wish"
	"engagementAPI/middleware"
	"engagementAPI/services"
)

const notConfiguredMessage = "DATABASE_URL not configured. Please add a Postgres or Redis connection string to the environment."

type MessageHandler struct {
	wishService   *services.WishService
	adminPassword string
}

func NewMessageHandler(wishService *services.WishService, adminPassword string) *MessageHandler {
	return &MessageHandler{
		wishService:   wishService,
		adminPassword: adminPassword,
	}
}

// HandleMessages serves every method on /api/messages.
func (h *MessageHandler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if !h.wishService.Configured() {
		respondWithError(w, http.StatusInternalServerError, notConfiguredMessage)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.GetMessages(w, r)
	case http.MethodPost:
		h.PostMessage(w, r)
	case http.MethodDelete:
		h.DeleteMessage(w, r)
	default:
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	wishes, err := h.wishService.GetWishes(ctx)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, wish.ListWishesResponse{Success: true, Messages: wishes})
}

func (h *MessageHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req wish.CreateWishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.wishService.AddWish(ctx, req)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	middleware.WishesSubmitted.Inc()
	respondWithJSON(w, http.StatusCreated, wish.CreateWishResponse{Success: true, Message: created})
}

func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !middleware.IsAdmin(r, h.adminPassword) {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req wish.DeleteWishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Message ID is required")
		return
	}

	if err := h.wishService.RemoveWish(ctx, string(req.ID)); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	middleware.WishesDeleted.Inc()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Message deleted"})
}

// respondWithServiceError maps service errors to status codes. Backend
// details are logged, never returned to the caller.
func (h *MessageHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidWish):
		respondWithError(w, http.StatusBadRequest, "Name and message are required")
	case errors.Is(err, services.ErrMissingID):
		respondWithError(w, http.StatusBadRequest, "Message ID is required")
	case errors.Is(err, services.ErrNotConfigured):
		respondWithError(w, http.StatusInternalServerError, notConfiguredMessage)
	default:
		requestID, _ := middleware.GetRequestID(r.Context())
		log.WithError(err).WithFields(log.Fields{
			"method":     r.Method,
			"request_id": requestID,
		}).Error("API error")
		respondWithError(w, http.StatusInternalServerError, "Database connection error")
	}
}
