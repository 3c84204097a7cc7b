package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ZertGraf/team-feedback/internal/domain"
	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	"github.com/ZertGraf/team-feedback/internal/service"
	"github.com/go-chi/chi/v5"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	logger          *logger.Logger
}

func NewFeedbackHandler(feedbackService *service.FeedbackService, logger *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger.Component("handler/feedback"),
	}
}

func (h *FeedbackHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.MyFeedback)
	r.Post("/", h.SubmitFeedback)
	r.Post("/check", h.CheckFeedback)

	return r
}

type SubmitFeedbackRequest struct {
	RecipientName string `json:"recipient_name"`
	Feedback      string `json:"feedback"`
	IsAnonymous   bool   `json:"is_anonymous"`
}

type FeedbackResponse struct {
	Feedback FeedbackDTO `json:"feedback"`
}

type FeedbackListResponse struct {
	Feedback []FeedbackDTO `json:"feedback"`
}

type CheckFeedbackRequest struct {
	Feedback string `json:"feedback"`
}

type CheckFeedbackResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	Term     string `json:"term,omitempty"`
}

// MyFeedback lists what the viewer may see without a target:
// their own feedback, or everything for admins.
func (h *FeedbackHandler) MyFeedback(w http.ResponseWriter, r *http.Request) {
	viewer, ok := ViewerFrom(r.Context())
	if !ok {
		WriteError(w, domain.ErrUnauthorized, h.logger)
		return
	}

	feedback := h.feedbackService.Visible(r.Context(), viewer, nil)
	writeJSON(w, http.StatusOK, FeedbackListResponse{Feedback: domainFeedbackListToHTTP(feedback)}, h.logger)
}

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	sender, ok := ViewerFrom(r.Context())
	if !ok {
		WriteError(w, domain.ErrUnauthorized, h.logger)
		return
	}

	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid request body", h.logger)
		return
	}

	record, err := h.feedbackService.Submit(r.Context(), sender, service.SubmitRequest{
		RecipientName: req.RecipientName,
		Body:          req.Feedback,
		IsAnonymous:   req.IsAnonymous,
	})
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, FeedbackResponse{Feedback: domainFeedbackToHTTP(record)}, h.logger)
}

// CheckFeedback evaluates draft text; clients call it on every edit.
func (h *FeedbackHandler) CheckFeedback(w http.ResponseWriter, r *http.Request) {
	var req CheckFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid request body", h.logger)
		return
	}

	verdict := h.feedbackService.Check(req.Feedback)
	writeJSON(w, http.StatusOK, CheckFeedbackResponse{
		Accepted: verdict.Accepted,
		Reason:   verdict.Reason,
		Term:     verdict.Term,
	}, h.logger)
}
