package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ZertGraf/team-feedback/internal/domain"
)

// JSONStore implements Store on top of any Blobs backend.
type JSONStore struct {
	blobs Blobs
}

func NewJSONStore(blobs Blobs) *JSONStore {
	return &JSONStore{blobs: blobs}
}

func (s *JSONStore) LoadMembers(ctx context.Context) ([]domain.TeamMember, error) {
	var members []domain.TeamMember
	if err := s.load(ctx, KeyMembers, &members); err != nil {
		return nil, err
	}
	if members == nil {
		members = []domain.TeamMember{}
	}
	return members, nil
}

func (s *JSONStore) SaveMembers(ctx context.Context, members []domain.TeamMember) error {
	if members == nil {
		members = []domain.TeamMember{}
	}
	return s.save(ctx, KeyMembers, members)
}

func (s *JSONStore) LoadFeedback(ctx context.Context) ([]domain.Feedback, error) {
	var feedback []domain.Feedback
	if err := s.load(ctx, KeyFeedback, &feedback); err != nil {
		return nil, err
	}
	if feedback == nil {
		feedback = []domain.Feedback{}
	}
	return feedback, nil
}

func (s *JSONStore) SaveFeedback(ctx context.Context, feedback []domain.Feedback) error {
	if feedback == nil {
		feedback = []domain.Feedback{}
	}
	return s.save(ctx, KeyFeedback, feedback)
}

func (s *JSONStore) LoadPreferences(ctx context.Context) (domain.NotificationPreferences, error) {
	prefs := domain.DefaultPreferences()
	if err := s.load(ctx, KeyPreferences, &prefs); err != nil {
		return domain.DefaultPreferences(), err
	}
	return prefs, nil
}

func (s *JSONStore) SavePreferences(ctx context.Context, prefs domain.NotificationPreferences) error {
	return s.save(ctx, KeyPreferences, prefs)
}

func (s *JSONStore) Initialized(ctx context.Context) (bool, error) {
	var flag bool
	err := s.load(ctx, KeyInitialized, &flag)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return flag, nil
}

// MarkInitialized clears previous collections, like a first run does, and
// records that seeding happened.
func (s *JSONStore) MarkInitialized(ctx context.Context) error {
	if err := s.blobs.Delete(ctx, KeyFeedback); err != nil {
		return fmt.Errorf("reset %s: %w", KeyFeedback, err)
	}
	return s.save(ctx, KeyInitialized, true)
}

func (s *JSONStore) load(ctx context.Context, key string, dst any) error {
	raw, err := s.blobs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("read %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *JSONStore) save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := s.blobs.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

var _ Store = (*JSONStore)(nil)
