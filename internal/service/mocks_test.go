package service

import (
	"context"
	"sync"
	"time"

	"github.com/ZertGraf/team-feedback/internal/domain"
	"github.com/ZertGraf/team-feedback/internal/moderation"
	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	"github.com/ZertGraf/team-feedback/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) LoadMembers(ctx context.Context) ([]domain.TeamMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

func (m *MockStore) SaveMembers(ctx context.Context, members []domain.TeamMember) error {
	return m.Called(ctx, members).Error(0)
}

func (m *MockStore) LoadFeedback(ctx context.Context) ([]domain.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

func (m *MockStore) SaveFeedback(ctx context.Context, feedback []domain.Feedback) error {
	return m.Called(ctx, feedback).Error(0)
}

func (m *MockStore) LoadPreferences(ctx context.Context) (domain.NotificationPreferences, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.NotificationPreferences), args.Error(1)
}

func (m *MockStore) SavePreferences(ctx context.Context, prefs domain.NotificationPreferences) error {
	return m.Called(ctx, prefs).Error(0)
}

func (m *MockStore) Initialized(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) MarkInitialized(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ repository.Store = (*MockStore)(nil)

// recordingNotifier keeps every notification it receives.
type recordingNotifier struct {
	mu       sync.Mutex
	received []domain.Feedback
}

func (n *recordingNotifier) FeedbackReceived(_ context.Context, feedback domain.Feedback) {
	n.mu.Lock()
	n.received = append(n.received, feedback)
	n.mu.Unlock()
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.received)
}

func tierPtr(tier domain.Tier) *domain.Tier {
	return &tier
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

type fixture struct {
	blobs    *repository.MemoryBlobs
	store    *repository.JSONStore
	notifier *recordingNotifier
	feedback *FeedbackService
	members  *MemberService
}

func newFixture(opts ...MemberOption) *fixture {
	blobs := repository.NewMemoryBlobs()
	store := repository.NewJSONStore(blobs)
	notifier := &recordingNotifier{}
	log := logger.Discard()

	feedback := NewFeedbackService(store, moderation.NewBlocklist(nil, 0), notifier, log)
	return &fixture{
		blobs:    blobs,
		store:    store,
		notifier: notifier,
		feedback: feedback,
		members:  NewMemberService(store, feedback, log, opts...),
	}
}

// seeded member lookups by name
func memberNamed(members []domain.TeamMember, name string) domain.TeamMember {
	for _, m := range members {
		if m.Name == name {
			return m
		}
	}
	panic("no member named " + name)
}
