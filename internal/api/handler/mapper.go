package handler

import (
	"time"

	"github.com/ZertGraf/team-feedback/internal/domain"
)

// MemberDTO is a team member as rendered over HTTP.
type MemberDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Team           string `json:"team"`
	Tier           string `json:"tier"`
	AvatarInitials string `json:"avatar_initials"`
	IsAdmin        bool   `json:"is_admin"`
	IsSuperAdmin   bool   `json:"is_super_admin"`
}

// FeedbackDTO is a feedback record as rendered over HTTP.
type FeedbackDTO struct {
	ID            int64     `json:"id"`
	RecipientName string    `json:"recipient_name"`
	Feedback      string    `json:"feedback"`
	IsAnonymous   bool      `json:"is_anonymous"`
	SenderName    string    `json:"sender_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// PreferencesDTO carries notification preferences in both directions.
type PreferencesDTO struct {
	ReceiveFeedbackNotifications bool `json:"receive_feedback_notifications"`
}

func domainMemberToHTTP(m domain.TeamMember) MemberDTO {
	return MemberDTO{
		ID:             m.ID,
		Name:           m.Name,
		Role:           m.Role,
		Team:           m.TeamName(),
		Tier:           m.Tier.String(),
		AvatarInitials: m.AvatarInitials,
		IsAdmin:        m.IsAdmin(),
		IsSuperAdmin:   m.IsSuperAdmin(),
	}
}

func domainMembersToHTTP(members []domain.TeamMember) []MemberDTO {
	out := make([]MemberDTO, 0, len(members))
	for _, m := range members {
		out = append(out, domainMemberToHTTP(m))
	}
	return out
}

func domainFeedbackToHTTP(f domain.Feedback) FeedbackDTO {
	return FeedbackDTO{
		ID:            f.ID,
		RecipientName: f.RecipientName,
		Feedback:      f.Body,
		IsAnonymous:   f.IsAnonymous,
		SenderName:    f.SenderName,
		CreatedAt:     f.CreatedAt,
	}
}

func domainFeedbackListToHTTP(list []domain.Feedback) []FeedbackDTO {
	out := make([]FeedbackDTO, 0, len(list))
	for _, f := range list {
		out = append(out, domainFeedbackToHTTP(f))
	}
	return out
}

func domainPreferencesToHTTP(p domain.NotificationPreferences) PreferencesDTO {
	return PreferencesDTO{ReceiveFeedbackNotifications: p.ReceiveFeedbackNotifications}
}

func httpPreferencesToDomain(p PreferencesDTO) domain.NotificationPreferences {
	return domain.NotificationPreferences{ReceiveFeedbackNotifications: p.ReceiveFeedbackNotifications}
}
