package domain

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// UnassignedTeam labels members without a team.
const UnassignedTeam = "Unassigned"

type TeamMember struct {
	ID             int64
	Name           string
	Role           string // job title, no access implication
	Team           string
	Tier           Tier
	AvatarInitials string // derived from Name
}

// IsAdmin reports whether the member holds at least admin privileges.
func (m TeamMember) IsAdmin() bool {
	return m.Tier.AtLeast(TierAdmin)
}

// IsSuperAdmin reports whether the member is a super admin.
func (m TeamMember) IsSuperAdmin() bool {
	return m.Tier.AtLeast(TierSuperAdmin)
}

// TeamName returns the team label, falling back to UnassignedTeam.
func (m TeamMember) TeamName() string {
	if strings.TrimSpace(m.Team) == "" {
		return UnassignedTeam
	}
	return m.Team
}

// Normalize recomputes derived fields before the member is persisted.
func (m *TeamMember) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Team = m.TeamName()
	m.AvatarInitials = Initials(m.Name)
}

// Initials returns up to two upper-cased leading letters of the
// space-separated parts of name.
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, " ") {
		if part == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(r)
		if utf8.RuneCountInString(b.String()) == 2 {
			break
		}
	}
	return strings.ToUpper(b.String())
}

type teamMemberJSON struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Team           string `json:"team,omitempty"`
	Tier           string `json:"tier,omitempty"`
	AvatarInitials string `json:"avatarInitials"`

	// legacy flags, written for older readers and honored when tier is absent
	IsAdmin      bool `json:"isAdmin"`
	IsSuperAdmin bool `json:"isSuperAdmin,omitempty"`
}

// MarshalJSON writes the tier together with the legacy admin flags.
func (m TeamMember) MarshalJSON() ([]byte, error) {
	return json.Marshal(teamMemberJSON{
		ID:             m.ID,
		Name:           m.Name,
		Role:           m.Role,
		Team:           m.Team,
		Tier:           m.Tier.String(),
		AvatarInitials: m.AvatarInitials,
		IsAdmin:        m.IsAdmin(),
		IsSuperAdmin:   m.IsSuperAdmin(),
	})
}

// UnmarshalJSON accepts both the tier field and the legacy boolean pair.
// A legacy record with isSuperAdmin set is a super admin regardless of isAdmin.
// An unknown tier string decodes to TierInvalid instead of failing the record.
func (m *TeamMember) UnmarshalJSON(data []byte) error {
	var raw teamMemberJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	tier := TierMember
	switch {
	case raw.Tier != "":
		tier = ParseTier(raw.Tier)
	case raw.IsSuperAdmin:
		tier = TierSuperAdmin
	case raw.IsAdmin:
		tier = TierAdmin
	}

	*m = TeamMember{
		ID:             raw.ID,
		Name:           raw.Name,
		Role:           raw.Role,
		Team:           raw.Team,
		Tier:           tier,
		AvatarInitials: raw.AvatarInitials,
	}
	return nil
}
