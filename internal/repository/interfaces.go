package repository

import (
	"context"
	"errors"

	"github.com/ZertGraf/team-feedback/internal/domain"
)

// keys of the persisted blobs
const (
	KeyMembers     = "teamMembers"
	KeyFeedback    = "feedbackList"
	KeyPreferences = "notificationPreferences"
	KeyInitialized = "initializedTeamMembers"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Store persists whole collections as opaque JSON blobs.
// Read failures other than ErrNotFound wrap domain.ErrStoreUnavailable.
type Store interface {
	LoadMembers(ctx context.Context) ([]domain.TeamMember, error)
	SaveMembers(ctx context.Context, members []domain.TeamMember) error

	LoadFeedback(ctx context.Context) ([]domain.Feedback, error)
	SaveFeedback(ctx context.Context, feedback []domain.Feedback) error

	LoadPreferences(ctx context.Context) (domain.NotificationPreferences, error)
	SavePreferences(ctx context.Context, prefs domain.NotificationPreferences) error

	// Initialized reports whether the default team has been seeded.
	Initialized(ctx context.Context) (bool, error)
	MarkInitialized(ctx context.Context) error
}

// Blobs is the raw key-value backend a Store is built on.
type Blobs interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
