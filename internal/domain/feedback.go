package domain

import (
	"sync"
	"time"
)

// AnonymousSender replaces the sender name of anonymous feedback.
const AnonymousSender = "Anonymous"

type Feedback struct {
	ID            int64     `json:"id"`
	RecipientName string    `json:"recipientName"` // linked by name, not id
	Body          string    `json:"feedback"`
	IsAnonymous   bool      `json:"isAnonymous"`
	CreatedAt     time.Time `json:"createdAt"`
	SenderName    string    `json:"senderName"`
}

// FeedbackDraft is a submission that passed moderation but is not yet stored.
type FeedbackDraft struct {
	RecipientName string
	Body          string
	IsAnonymous   bool
}

// IDGenerator hands out strictly increasing millisecond-based ids.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns an id that is greater than every id returned before.
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe makes sure later ids are greater than id.
func (g *IDGenerator) Observe(id int64) {
	g.mu.Lock()
	if id > g.last {
		g.last = id
	}
	g.mu.Unlock()
}

// NewFeedback builds the stored record for a draft sent by sender.
// The sender's name is resolved here once; anonymous records never carry it.
func NewFeedback(id int64, draft FeedbackDraft, sender string, createdAt time.Time) Feedback {
	senderName := sender
	if draft.IsAnonymous {
		senderName = AnonymousSender
	}

	return Feedback{
		ID:            id,
		RecipientName: draft.RecipientName,
		Body:          draft.Body,
		IsAnonymous:   draft.IsAnonymous,
		CreatedAt:     createdAt.UTC(),
		SenderName:    senderName,
	}
}
