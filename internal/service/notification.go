package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZertGraf/team-feedback/internal/domain"
	"github.com/ZertGraf/team-feedback/internal/notify"
	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	"github.com/ZertGraf/team-feedback/internal/repository"
)

// NotificationService stores notification preferences and forwards new
// feedback to the underlying notifier when they allow it.
type NotificationService struct {
	store  repository.Store
	next   notify.Notifier
	logger *logger.Logger
}

func NewNotificationService(store repository.Store, next notify.Notifier, logger *logger.Logger) *NotificationService {
	if next == nil {
		next = notify.Nop{}
	}
	return &NotificationService{
		store:  store,
		next:   next,
		logger: logger.Component("service/notification"),
	}
}

// Preferences returns the stored preferences or the defaults.
func (s *NotificationService) Preferences(ctx context.Context) domain.NotificationPreferences {
	prefs, err := s.store.LoadPreferences(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("failed to load notification preferences, using defaults", "error", err)
		}
		return domain.DefaultPreferences()
	}
	return prefs
}

func (s *NotificationService) UpdatePreferences(ctx context.Context, prefs domain.NotificationPreferences) (domain.NotificationPreferences, error) {
	if err := s.store.SavePreferences(ctx, prefs); err != nil {
		return domain.NotificationPreferences{}, fmt.Errorf("save preferences: %w", err)
	}

	s.logger.Info("notification preferences updated",
		"receive_feedback_notifications", prefs.ReceiveFeedbackNotifications)
	return prefs, nil
}

// FeedbackReceived implements notify.Notifier.
func (s *NotificationService) FeedbackReceived(ctx context.Context, feedback domain.Feedback) {
	if !s.Preferences(ctx).ReceiveFeedbackNotifications {
		return
	}
	s.next.FeedbackReceived(ctx, feedback)
}

var _ notify.Notifier = (*NotificationService)(nil)
