package access

import (
	"testing"
	"time"

	"github.com/ZertGraf/team-feedback/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice  = domain.TeamMember{ID: 1, Name: "Alice", Tier: domain.TierMember}
	bob    = domain.TeamMember{ID: 2, Name: "Bob", Tier: domain.TierMember}
	carol  = domain.TeamMember{ID: 3, Name: "Carol", Tier: domain.TierMember}
	admin  = domain.TeamMember{ID: 6, Name: "Anish", Tier: domain.TierAdmin}
	other  = domain.TeamMember{ID: 8, Name: "Dana", Tier: domain.TierAdmin}
	super  = domain.TeamMember{ID: 7, Name: "Super Anish", Tier: domain.TierSuperAdmin}
	super2 = domain.TeamMember{ID: 9, Name: "Eve", Tier: domain.TierSuperAdmin}
)

func feedbackFixture() []domain.Feedback {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Feedback{
		{ID: 1, RecipientName: "Bob", SenderName: "Alice", CreatedAt: base},
		{ID: 2, RecipientName: "Carol", SenderName: "Alice", CreatedAt: base.Add(time.Hour)},
		{ID: 3, RecipientName: "Bob", SenderName: domain.AnonymousSender, IsAnonymous: true, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, RecipientName: "Anish", SenderName: "Carol", CreatedAt: base.Add(-time.Hour)},
	}
}

func ids(items []domain.Feedback) []int64 {
	out := make([]int64, 0, len(items))
	for _, f := range items {
		out = append(out, f.ID)
	}
	return out
}

func TestVisibleFeedback(t *testing.T) {
	all := feedbackFixture()

	t.Run("member sees own feedback without target", func(t *testing.T) {
		got := VisibleFeedback(bob, all, nil)
		assert.Equal(t, []int64{3, 1}, ids(got))
	})

	t.Run("member sees own feedback with self as target", func(t *testing.T) {
		got := VisibleFeedback(bob, all, &bob)
		assert.Equal(t, []int64{3, 1}, ids(got))
	})

	t.Run("member sees nothing about others", func(t *testing.T) {
		for _, target := range []domain.TeamMember{alice, carol, admin, super} {
			target := target
			got := VisibleFeedback(bob, all, &target)
			assert.NotNil(t, got)
			assert.Empty(t, got, "target %s", target.Name)
		}
	})

	t.Run("admin sees exactly the target's feedback", func(t *testing.T) {
		for _, viewer := range []domain.TeamMember{admin, super} {
			got := VisibleFeedback(viewer, all, &bob)
			assert.Equal(t, []int64{3, 1}, ids(got), "viewer %s", viewer.Name)

			got = VisibleFeedback(viewer, all, &carol)
			assert.Equal(t, []int64{2}, ids(got), "viewer %s", viewer.Name)
		}
	})

	t.Run("admin without target sees everything", func(t *testing.T) {
		got := VisibleFeedback(admin, all, nil)
		assert.Equal(t, []int64{3, 2, 1, 4}, ids(got))
	})

	t.Run("scenario from a plain member named Bob", func(t *testing.T) {
		scenario := []domain.Feedback{
			{ID: 10, RecipientName: "Bob", SenderName: "Alice"},
			{ID: 11, RecipientName: "Carol", SenderName: "Alice"},
		}
		got := VisibleFeedback(bob, scenario, nil)
		require.Len(t, got, 1)
		assert.Equal(t, int64(10), got[0].ID)
	})

	t.Run("input is not reordered", func(t *testing.T) {
		input := feedbackFixture()
		VisibleFeedback(admin, input, nil)
		assert.Equal(t, []int64{1, 2, 3, 4}, ids(input))
	})

	t.Run("invalid viewer sees nothing", func(t *testing.T) {
		ghost := domain.TeamMember{ID: 2, Name: "Bob", Tier: domain.TierInvalid}
		assert.Empty(t, VisibleFeedback(ghost, all, nil))
	})

	t.Run("matching is by name so a renamed member loses history", func(t *testing.T) {
		renamed := bob
		renamed.Name = "Robert"
		assert.Empty(t, VisibleFeedback(renamed, all, nil))
	})

	t.Run("same timestamp falls back to id", func(t *testing.T) {
		at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		tied := []domain.Feedback{
			{ID: 5, RecipientName: "Bob", CreatedAt: at},
			{ID: 6, RecipientName: "Bob", CreatedAt: at},
		}
		assert.Equal(t, []int64{6, 5}, ids(VisibleFeedback(bob, tied, nil)))
	})
}

func TestCanManageMember(t *testing.T) {
	cases := []struct {
		name   string
		actor  domain.TeamMember
		target domain.TeamMember
		want   bool
	}{
		{"super admin manages member", super, bob, true},
		{"super admin manages admin", super, admin, true},
		{"super admin manages other super admin", super, super2, true},
		{"super admin cannot manage self", super, super, false},
		{"admin manages member", admin, bob, true},
		{"admin cannot manage other admin", admin, other, false},
		{"admin cannot manage super admin", admin, super, false},
		{"admin cannot manage self", admin, admin, false},
		{"member manages nobody", bob, carol, false},
		{"member cannot manage self", bob, bob, false},
		{"invalid actor tier", domain.TeamMember{ID: 50, Tier: domain.Tier(9)}, bob, false},
		{"invalid target tier", super, domain.TeamMember{ID: 51, Tier: domain.TierInvalid}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, CanManageMember(c.actor, c.target))
		})
	}
}

func TestCanAssignTier(t *testing.T) {
	assert.True(t, CanAssignTier(super, domain.TierMember))
	assert.True(t, CanAssignTier(super, domain.TierAdmin))
	assert.True(t, CanAssignTier(super, domain.TierSuperAdmin))

	assert.True(t, CanAssignTier(admin, domain.TierMember))
	assert.False(t, CanAssignTier(admin, domain.TierAdmin))
	assert.False(t, CanAssignTier(admin, domain.TierSuperAdmin))

	assert.False(t, CanAssignTier(bob, domain.TierMember))
	assert.False(t, CanAssignTier(super, domain.TierInvalid))
	assert.False(t, CanAssignTier(domain.TeamMember{Tier: domain.TierInvalid}, domain.TierMember))
}

func TestFor(t *testing.T) {
	t.Run("admin over member", func(t *testing.T) {
		p := For(admin, bob)
		assert.True(t, p.CanViewFeedback)
		assert.True(t, p.CanEdit)
		assert.True(t, p.CanDelete)
		assert.Equal(t, []domain.Tier{domain.TierMember}, p.AssignableTiers)
	})

	t.Run("member over self", func(t *testing.T) {
		p := For(bob, bob)
		assert.True(t, p.CanViewFeedback)
		assert.False(t, p.CanEdit)
		assert.Empty(t, p.AssignableTiers)
	})

	t.Run("member over other", func(t *testing.T) {
		p := For(bob, carol)
		assert.False(t, p.CanViewFeedback)
		assert.False(t, p.CanDelete)
	})

	t.Run("super admin over self", func(t *testing.T) {
		p := For(super, super)
		assert.True(t, p.CanViewFeedback)
		assert.False(t, p.CanEdit)
		assert.Len(t, p.AssignableTiers, 3)
	})
}
