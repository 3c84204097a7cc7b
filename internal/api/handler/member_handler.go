package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ZertGraf/team-feedback/internal/access"
	"github.com/ZertGraf/team-feedback/internal/domain"
	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	"github.com/ZertGraf/team-feedback/internal/service"
	"github.com/go-chi/chi/v5"
)

type MemberHandler struct {
	memberService   *service.MemberService
	feedbackService *service.FeedbackService
	logger          *logger.Logger
}

func NewMemberHandler(
	memberService *service.MemberService,
	feedbackService *service.FeedbackService,
	logger *logger.Logger,
) *MemberHandler {
	return &MemberHandler{
		memberService:   memberService,
		feedbackService: feedbackService,
		logger:          logger.Component("handler/member"),
	}
}

func (h *MemberHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListMembers)
	r.Post("/", h.CreateMember)
	r.Get("/teams", h.ListTeams)

	r.Route("/{memberID}", func(r chi.Router) {
		r.Get("/", h.GetMember)
		r.Put("/", h.UpdateMember)
		r.Delete("/", h.DeleteMember)
		r.Get("/feedback", h.MemberFeedback)
		r.Get("/permissions", h.MemberPermissions)
	})

	return r
}

type MemberRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Team string `json:"team"`
	Tier string `json:"tier"`
}

// input leaves Tier nil when the request omits it, so an update keeps the
// member's current tier.
func (r MemberRequest) input() service.MemberInput {
	in := service.MemberInput{
		Name: r.Name,
		Role: r.Role,
		Team: r.Team,
	}
	if r.Tier != "" {
		tier := domain.ParseTier(r.Tier)
		in.Tier = &tier
	}
	return in
}

type MemberResponse struct {
	Member MemberDTO `json:"member"`
}

type MembersResponse struct {
	Members []MemberDTO `json:"members"`
}

type TeamsResponse struct {
	Teams []string `json:"teams"`
}

type MemberFeedbackResponse struct {
	Member   MemberDTO     `json:"member"`
	CanView  bool          `json:"can_view"`
	Feedback []FeedbackDTO `json:"feedback"`
}

type PermissionsResponse struct {
	MemberID        int64    `json:"member_id"`
	CanViewFeedback bool     `json:"can_view_feedback"`
	CanEdit         bool     `json:"can_edit"`
	CanDelete       bool     `json:"can_delete"`
	AssignableTiers []string `json:"assignable_tiers"`
}

func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members := h.memberService.List(r.Context())
	writeJSON(w, http.StatusOK, MembersResponse{Members: domainMembersToHTTP(members)}, h.logger)
}

func (h *MemberHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams := h.memberService.Teams(r.Context())
	writeJSON(w, http.StatusOK, TeamsResponse{Teams: teams}, h.logger)
}

func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	member, ok := h.member(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, MemberResponse{Member: domainMemberToHTTP(member)}, h.logger)
}

func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.viewer(w, r)
	if !ok {
		return
	}

	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid request body", h.logger)
		return
	}

	member, err := h.memberService.Create(r.Context(), actor, req.input())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, MemberResponse{Member: domainMemberToHTTP(member)}, h.logger)
}

func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.viewer(w, r)
	if !ok {
		return
	}

	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid request body", h.logger)
		return
	}

	member, err := h.memberService.Update(r.Context(), actor, id, req.input())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MemberResponse{Member: domainMemberToHTTP(member)}, h.logger)
}

func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.viewer(w, r)
	if !ok {
		return
	}

	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	if err := h.memberService.Delete(r.Context(), actor, id); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MemberFeedback is the profile view: feedback about one member as far as
// the viewer may see it. A member without permission gets can_view=false.
func (h *MemberHandler) MemberFeedback(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}

	target, ok := h.member(w, r)
	if !ok {
		return
	}

	perms := access.For(viewer, target)
	feedback := h.feedbackService.Visible(r.Context(), viewer, &target)

	writeJSON(w, http.StatusOK, MemberFeedbackResponse{
		Member:   domainMemberToHTTP(target),
		CanView:  perms.CanViewFeedback,
		Feedback: domainFeedbackListToHTTP(feedback),
	}, h.logger)
}

func (h *MemberHandler) MemberPermissions(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}

	target, ok := h.member(w, r)
	if !ok {
		return
	}

	perms := access.For(viewer, target)
	tiers := make([]string, 0, len(perms.AssignableTiers))
	for _, tier := range perms.AssignableTiers {
		tiers = append(tiers, tier.String())
	}

	writeJSON(w, http.StatusOK, PermissionsResponse{
		MemberID:        target.ID,
		CanViewFeedback: perms.CanViewFeedback,
		CanEdit:         perms.CanEdit,
		CanDelete:       perms.CanDelete,
		AssignableTiers: tiers,
	}, h.logger)
}

func (h *MemberHandler) member(w http.ResponseWriter, r *http.Request) (domain.TeamMember, bool) {
	id, ok := h.memberID(w, r)
	if !ok {
		return domain.TeamMember{}, false
	}

	member, err := h.memberService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err, h.logger)
		return domain.TeamMember{}, false
	}
	return member, true
}

func (h *MemberHandler) memberID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "memberID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("invalid member id %q", raw), h.logger)
		return 0, false
	}
	return id, true
}

func (h *MemberHandler) viewer(w http.ResponseWriter, r *http.Request) (domain.TeamMember, bool) {
	viewer, ok := ViewerFrom(r.Context())
	if !ok {
		WriteError(w, domain.ErrUnauthorized, h.logger)
		return domain.TeamMember{}, false
	}
	return viewer, true
}

// Me returns the member the request is acting as.
func (h *MemberHandler) Me(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, MemberResponse{Member: domainMemberToHTTP(viewer)}, h.logger)
}
