package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	"github.com/ZertGraf/team-feedback/internal/service"
	"github.com/go-chi/chi/v5"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
	logger              *logger.Logger
}

func NewNotificationHandler(notificationService *service.NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger.Component("handler/notification"),
	}
}

func (h *NotificationHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/preferences", h.GetPreferences)
	r.Put("/preferences", h.UpdatePreferences)

	return r
}

type PreferencesResponse struct {
	Preferences PreferencesDTO `json:"preferences"`
}

func (h *NotificationHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs := h.notificationService.Preferences(r.Context())
	writeJSON(w, http.StatusOK, PreferencesResponse{Preferences: domainPreferencesToHTTP(prefs)}, h.logger)
}

func (h *NotificationHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	req := domainPreferencesToHTTP(h.notificationService.Preferences(r.Context()))
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid request body", h.logger)
		return
	}

	updated, err := h.notificationService.UpdatePreferences(r.Context(), httpPreferencesToDomain(req))
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, PreferencesResponse{Preferences: domainPreferencesToHTTP(updated)}, h.logger)
}
