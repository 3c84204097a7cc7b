// Package access decides who may see which feedback and who may manage
// which team members. Every function is total: denial is an empty result
// or false, never an error.
package access

import (
	"sort"

	"github.com/ZertGraf/team-feedback/internal/domain"
)

// VisibleFeedback filters all down to the records viewer may read.
//
// Admins see every record about target, or every record when target is nil.
// Other members see records about themselves, and nothing about anyone else.
// The result is sorted newest first and never aliases all.
func VisibleFeedback(viewer domain.TeamMember, all []domain.Feedback, target *domain.TeamMember) []domain.Feedback {
	var keep func(domain.Feedback) bool

	switch {
	case viewer.Tier.AtLeast(domain.TierAdmin) && target != nil:
		keep = recipientIs(target.Name)
	case viewer.Tier.AtLeast(domain.TierAdmin):
		keep = func(domain.Feedback) bool { return true }
	case !viewer.Tier.Valid():
		return []domain.Feedback{}
	case target == nil || target.ID == viewer.ID:
		keep = recipientIs(viewer.Name)
	default:
		return []domain.Feedback{}
	}

	visible := make([]domain.Feedback, 0, len(all))
	for _, f := range all {
		if keep(f) {
			visible = append(visible, f)
		}
	}

	SortNewestFirst(visible)
	return visible
}

// SortNewestFirst orders feedback by creation time, latest first.
// Records created in the same instant fall back to id order.
func SortNewestFirst(items []domain.Feedback) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}

func recipientIs(name string) func(domain.Feedback) bool {
	return func(f domain.Feedback) bool {
		return f.RecipientName == name
	}
}

// CanManageMember reports whether actor may create, edit, delete or re-tier
// target. Nobody manages themselves through this path.
func CanManageMember(actor, target domain.TeamMember) bool {
	if !actor.Tier.Valid() || !target.Tier.Valid() {
		return false
	}
	if actor.ID == target.ID {
		return false
	}

	switch actor.Tier {
	case domain.TierSuperAdmin:
		return true
	case domain.TierAdmin:
		return target.Tier == domain.TierMember
	default:
		return false
	}
}

// CanAssignTier reports whether actor may give requested to a new or
// existing member. Only super admins hand out admin tiers.
func CanAssignTier(actor domain.TeamMember, requested domain.Tier) bool {
	if !requested.Valid() {
		return false
	}

	switch actor.Tier {
	case domain.TierSuperAdmin:
		return true
	case domain.TierAdmin:
		return requested == domain.TierMember
	default:
		return false
	}
}

// Permissions summarizes what actor may do to target, for rendering.
type Permissions struct {
	CanViewFeedback bool
	CanEdit         bool
	CanDelete       bool
	AssignableTiers []domain.Tier
}

// For returns the permission summary of actor over target.
func For(actor, target domain.TeamMember) Permissions {
	manage := CanManageMember(actor, target)

	p := Permissions{
		CanViewFeedback: actor.Tier.AtLeast(domain.TierAdmin) || (actor.Tier.Valid() && actor.ID == target.ID),
		CanEdit:         manage,
		CanDelete:       manage,
		AssignableTiers: []domain.Tier{},
	}
	for _, tier := range []domain.Tier{domain.TierMember, domain.TierAdmin, domain.TierSuperAdmin} {
		if CanAssignTier(actor, tier) {
			p.AssignableTiers = append(p.AssignableTiers, tier)
		}
	}
	return p
}
