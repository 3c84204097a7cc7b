package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ZertGraf/team-feedback/internal/access"
	"github.com/ZertGraf/team-feedback/internal/domain"
	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	"github.com/ZertGraf/team-feedback/internal/repository"
	. "github.com/go-ozzo/ozzo-validation"
)

type MemberService struct {
	store    repository.Store
	feedback *FeedbackService
	logger   *logger.Logger
	ids      *domain.IDGenerator
	mu       *sync.Mutex

	// renameCascade rewrites recipientName of stored feedback on rename
	renameCascade bool
}

type MemberOption func(*MemberService)

// WithRenameCascade keeps feedback attached to a member across renames.
func WithRenameCascade(enabled bool) MemberOption {
	return func(s *MemberService) {
		s.renameCascade = enabled
	}
}

// WithMemberIDs overrides the id generator.
func WithMemberIDs(ids *domain.IDGenerator) MemberOption {
	return func(s *MemberService) {
		s.ids = ids
	}
}

func NewMemberService(
	store repository.Store,
	feedback *FeedbackService,
	logger *logger.Logger,
	opts ...MemberOption,
) *MemberService {
	s := &MemberService{
		store:    store,
		feedback: feedback,
		logger:   logger.Component("service/member"),
		ids:      domain.NewIDGenerator(nil),
		mu:       new(sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MemberInput carries the editable fields of a team member.
type MemberInput struct {
	Name string
	Role string
	Team string

	// Tier is nil when not given: Create uses TierMember, Update keeps the
	// current tier.
	Tier *domain.Tier
}

// List returns every member. Unreadable storage yields an empty list.
func (s *MemberService) List(ctx context.Context) []domain.TeamMember {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// Get returns the member with id.
func (s *MemberService) Get(ctx context.Context, id int64) (domain.TeamMember, error) {
	for _, m := range s.List(ctx) {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.TeamMember{}, fmt.Errorf("member %d: %w", id, domain.ErrMemberNotFound)
}

// Teams returns the distinct team labels in member order.
func (s *MemberService) Teams(ctx context.Context) []string {
	seen := make(map[string]bool)
	teams := []string{}
	for _, m := range s.List(ctx) {
		name := m.TeamName()
		if !seen[name] {
			seen[name] = true
			teams = append(teams, name)
		}
	}

	if len(teams) == 0 {
		return []string{domain.UnassignedTeam}
	}
	return teams
}

// ResolveViewer returns the current member for id. When id no longer exists
// (for example the member was deleted) the least privileged remaining member
// is used instead, the first one in stored order on ties.
func (s *MemberService) ResolveViewer(ctx context.Context, id int64) (domain.TeamMember, error) {
	members := s.List(ctx)
	if len(members) == 0 {
		return domain.TeamMember{}, domain.ErrMemberNotFound
	}

	var fallback *domain.TeamMember
	for i := range members {
		if members[i].ID == id {
			return members[i], nil
		}
		if !members[i].Tier.Valid() {
			continue
		}
		if fallback == nil || members[i].Tier < fallback.Tier {
			fallback = &members[i]
		}
	}

	if fallback == nil {
		return domain.TeamMember{}, domain.ErrMemberNotFound
	}

	s.logger.Warn("current member not found, falling back",
		"requested_id", id,
		"fallback_id", fallback.ID,
		"fallback_tier", fallback.Tier.String(),
	)
	return *fallback, nil
}

// Create adds a new member on behalf of actor.
func (s *MemberService) Create(ctx context.Context, actor domain.TeamMember, in MemberInput) (domain.TeamMember, error) {
	if err := validateMember(&in); err != nil {
		return domain.TeamMember{}, err
	}

	candidate := domain.TeamMember{
		Name: in.Name,
		Role: in.Role,
		Team: in.Team,
		Tier: in.tierOr(domain.TierMember),
	}
	if !access.CanManageMember(actor, candidate) || !access.CanAssignTier(actor, candidate.Tier) {
		return domain.TeamMember{}, fmt.Errorf("create member as %d: %w", actor.ID, domain.ErrForbidden)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.load(ctx)
	candidate.ID = s.nextID(members)
	candidate.Normalize()

	if err := s.store.SaveMembers(ctx, append(members, candidate)); err != nil {
		return domain.TeamMember{}, fmt.Errorf("save members: %w", err)
	}

	s.logger.Info("member created",
		"member_id", candidate.ID,
		"tier", candidate.Tier.String(),
		"team", candidate.Team,
		"actor_id", actor.ID,
	)
	return candidate, nil
}

// Update replaces the editable fields of member id on behalf of actor.
func (s *MemberService) Update(ctx context.Context, actor domain.TeamMember, id int64, in MemberInput) (domain.TeamMember, error) {
	if err := validateMember(&in); err != nil {
		return domain.TeamMember{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.load(ctx)
	idx := indexOf(members, id)
	if idx < 0 {
		return domain.TeamMember{}, fmt.Errorf("member %d: %w", id, domain.ErrMemberNotFound)
	}

	current := members[idx]
	if !access.CanManageMember(actor, current) {
		return domain.TeamMember{}, fmt.Errorf("update member %d as %d: %w", id, actor.ID, domain.ErrForbidden)
	}
	tier := in.tierOr(current.Tier)
	if tier != current.Tier && !access.CanAssignTier(actor, tier) {
		return domain.TeamMember{}, fmt.Errorf("assign tier %s as %d: %w", tier, actor.ID, domain.ErrForbidden)
	}

	updated := current
	updated.Name = in.Name
	updated.Role = in.Role
	updated.Team = in.Team
	updated.Tier = tier
	updated.Normalize()

	members[idx] = updated
	if err := s.store.SaveMembers(ctx, members); err != nil {
		return domain.TeamMember{}, fmt.Errorf("save members: %w", err)
	}

	if updated.Name != current.Name {
		s.renamed(ctx, current.Name, updated.Name)
	}

	s.logger.Info("member updated",
		"member_id", id,
		"tier", updated.Tier.String(),
		"actor_id", actor.ID,
	)
	return updated, nil
}

// Delete removes member id on behalf of actor. Feedback about the member is kept.
func (s *MemberService) Delete(ctx context.Context, actor domain.TeamMember, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.load(ctx)
	idx := indexOf(members, id)
	if idx < 0 {
		return fmt.Errorf("member %d: %w", id, domain.ErrMemberNotFound)
	}

	if !access.CanManageMember(actor, members[idx]) {
		return fmt.Errorf("delete member %d as %d: %w", id, actor.ID, domain.ErrForbidden)
	}

	remaining := make([]domain.TeamMember, 0, len(members)-1)
	remaining = append(remaining, members[:idx]...)
	remaining = append(remaining, members[idx+1:]...)

	if err := s.store.SaveMembers(ctx, remaining); err != nil {
		return fmt.Errorf("save members: %w", err)
	}

	s.logger.Info("member deleted", "member_id", id, "actor_id", actor.ID)
	return nil
}

func (s *MemberService) renamed(ctx context.Context, from, to string) {
	if !s.renameCascade || s.feedback == nil {
		s.logger.Info("member renamed, existing feedback stays under the old name",
			"from", from, "to", to)
		return
	}

	moved, err := s.feedback.RenameRecipient(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to move feedback to renamed member",
			"from", from, "to", to, "error", err)
		return
	}
	s.logger.Info("feedback moved to renamed member", "from", from, "to", to, "count", moved)
}

// load reads members, seeding the default team on first run. Callers hold mu.
func (s *MemberService) load(ctx context.Context) []domain.TeamMember {
	initialized, err := s.store.Initialized(ctx)
	if err != nil {
		s.logger.Warn("store unavailable, using empty member list", "error", err)
		return []domain.TeamMember{}
	}

	if !initialized {
		return s.seed(ctx)
	}

	members, err := s.store.LoadMembers(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return domain.DefaultMembers()
	case err != nil:
		s.logger.Warn("failed to load members, using empty list", "error", err)
		return []domain.TeamMember{}
	}

	for _, m := range members {
		s.ids.Observe(m.ID)
	}
	return members
}

func (s *MemberService) seed(ctx context.Context) []domain.TeamMember {
	members := domain.DefaultMembers()

	if err := s.store.SaveMembers(ctx, members); err != nil {
		s.logger.Warn("failed to store default members", "error", err)
		return members
	}
	if err := s.store.MarkInitialized(ctx); err != nil {
		s.logger.Warn("failed to mark store initialized", "error", err)
	}

	s.logger.Info("default team seeded", "members_count", len(members))
	return members
}

func (s *MemberService) nextID(members []domain.TeamMember) int64 {
	for _, m := range members {
		s.ids.Observe(m.ID)
	}
	return s.ids.Next()
}

func indexOf(members []domain.TeamMember, id int64) int {
	for i, m := range members {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func validateMember(in *MemberInput) error {
	in.Name = strings.TrimSpace(in.Name)

	err := ValidateStruct(in,
		Field(&in.Name, Required, Length(2, 100)),
		Field(&in.Role, Length(0, 100)),
		Field(&in.Team, Length(0, 100)),
		Field(&in.Tier, By(validTier)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}

func validTier(value interface{}) error {
	tier, ok := value.(*domain.Tier)
	if !ok {
		return domain.ErrInvalidTier
	}
	if tier != nil && !tier.Valid() {
		return domain.ErrInvalidTier
	}
	return nil
}

func (in MemberInput) tierOr(fallback domain.Tier) domain.Tier {
	if in.Tier == nil {
		return fallback
	}
	return *in.Tier
}
