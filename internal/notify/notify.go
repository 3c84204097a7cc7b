// Package notify tells recipients about newly stored feedback.
package notify

import (
	"context"
	"fmt"

	"github.com/ZertGraf/team-feedback/internal/domain"
	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
)

// Notifier is informed after feedback has been saved. It never reports back.
type Notifier interface {
	FeedbackReceived(ctx context.Context, feedback domain.Feedback)
}

// Message is a rendered notification.
type Message struct {
	Title       string
	Description string
}

// NewFeedbackMessage renders the notification for feedback. The sender is
// only named when the feedback is not anonymous.
func NewFeedbackMessage(feedback domain.Feedback) Message {
	from := ""
	if !feedback.IsAnonymous {
		from = fmt.Sprintf(" from %s", feedback.SenderName)
	}

	return Message{
		Title:       "New Feedback Received",
		Description: fmt.Sprintf("You've received new feedback%s.", from),
	}
}

// LogNotifier emits notifications as structured log records.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(logger *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Component("notify")}
}

func (n *LogNotifier) FeedbackReceived(ctx context.Context, feedback domain.Feedback) {
	msg := NewFeedbackMessage(feedback)
	n.logger.InfoContext(ctx, msg.Title,
		"description", msg.Description,
		"recipient", feedback.RecipientName,
		"feedback_id", feedback.ID,
	)
}

// Nop discards notifications.
type Nop struct{}

func (Nop) FeedbackReceived(context.Context, domain.Feedback) {}

var (
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = Nop{}
)
