package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ZertGraf/team-feedback/internal/access"
	"github.com/ZertGraf/team-feedback/internal/domain"
	"github.com/ZertGraf/team-feedback/internal/moderation"
	"github.com/ZertGraf/team-feedback/internal/notify"
	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	"github.com/ZertGraf/team-feedback/internal/repository"
	. "github.com/go-ozzo/ozzo-validation"
)

type FeedbackService struct {
	store    repository.Store
	gate     moderation.Gate
	notifier notify.Notifier
	logger   *logger.Logger
	ids      *domain.IDGenerator
	now      func() time.Time
	mu       *sync.Mutex
}

type FeedbackOption func(*FeedbackService)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(now func() time.Time) FeedbackOption {
	return func(s *FeedbackService) {
		s.now = now
		s.ids = domain.NewIDGenerator(now)
	}
}

func NewFeedbackService(
	store repository.Store,
	gate moderation.Gate,
	notifier notify.Notifier,
	logger *logger.Logger,
	opts ...FeedbackOption,
) *FeedbackService {
	if notifier == nil {
		notifier = notify.Nop{}
	}

	s := &FeedbackService{
		store:    store,
		gate:     gate,
		notifier: notifier,
		logger:   logger.Component("service/feedback"),
		ids:      domain.NewIDGenerator(nil),
		now:      time.Now,
		mu:       new(sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitRequest is a feedback submission as entered by the sender.
type SubmitRequest struct {
	RecipientName string
	Body          string
	IsAnonymous   bool
}

// Check runs moderation on text without storing anything.
func (s *FeedbackService) Check(text string) moderation.Verdict {
	return s.gate.Evaluate(text)
}

// Submit moderates req and stores it as feedback from sender.
// A rejection is returned as a *moderation.RejectedError.
func (s *FeedbackService) Submit(ctx context.Context, sender domain.TeamMember, req SubmitRequest) (domain.Feedback, error) {
	req.RecipientName = strings.TrimSpace(req.RecipientName)
	if err := validateSubmission(&req); err != nil {
		return domain.Feedback{}, err
	}

	verdict := s.gate.Evaluate(req.Body)
	if err := verdict.Err(); err != nil {
		s.logger.Info("feedback rejected by moderation",
			"recipient", req.RecipientName,
			"term", verdict.Term,
		)
		return domain.Feedback{}, err
	}

	s.mu.Lock()
	all := s.load(ctx)
	for _, f := range all {
		s.ids.Observe(f.ID)
	}

	record := domain.NewFeedback(s.ids.Next(), domain.FeedbackDraft{
		RecipientName: req.RecipientName,
		Body:          req.Body,
		IsAnonymous:   req.IsAnonymous,
	}, sender.Name, s.now())

	err := s.store.SaveFeedback(ctx, append(all, record))
	s.mu.Unlock()
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("save feedback: %w", err)
	}

	s.logger.Info("feedback submitted",
		"feedback_id", record.ID,
		"recipient", record.RecipientName,
		"anonymous", record.IsAnonymous,
	)

	s.notifier.FeedbackReceived(ctx, record)
	return record, nil
}

// Visible returns the feedback viewer may read, newest first. With a nil
// target this is the viewer's own feedback view.
func (s *FeedbackService) Visible(ctx context.Context, viewer domain.TeamMember, target *domain.TeamMember) []domain.Feedback {
	s.mu.Lock()
	all := s.load(ctx)
	s.mu.Unlock()

	visible := access.VisibleFeedback(viewer, all, target)

	s.logger.Debug("feedback listed",
		"viewer_id", viewer.ID,
		"viewer_tier", viewer.Tier.String(),
		"count", len(visible),
	)
	return visible
}

// RenameRecipient moves feedback addressed to from over to to.
func (s *FeedbackService) RenameRecipient(ctx context.Context, from, to string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.store.LoadFeedback(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load feedback: %w", err)
	}

	moved := 0
	for i := range all {
		if all[i].RecipientName == from {
			all[i].RecipientName = to
			moved++
		}
	}
	if moved == 0 {
		return 0, nil
	}

	if err := s.store.SaveFeedback(ctx, all); err != nil {
		return 0, fmt.Errorf("save feedback: %w", err)
	}
	return moved, nil
}

// load reads all feedback; unreadable storage is treated as empty.
func (s *FeedbackService) load(ctx context.Context) []domain.Feedback {
	all, err := s.store.LoadFeedback(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return []domain.Feedback{}
	case err != nil:
		s.logger.Warn("failed to load feedback, using empty list", "error", err)
		return []domain.Feedback{}
	}
	return all
}

func validateSubmission(req *SubmitRequest) error {
	err := ValidateStruct(req,
		Field(&req.RecipientName, Required, Length(2, 100)),
		Field(&req.Body, Required, Length(1, 5000)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}
