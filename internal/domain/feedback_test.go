package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeedback(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("named sender", func(t *testing.T) {
		f := NewFeedback(1, FeedbackDraft{RecipientName: "Bob", Body: "Great work on the release notes"}, "Alice", created)
		assert.Equal(t, "Alice", f.SenderName)
		assert.Equal(t, "Bob", f.RecipientName)
		assert.Equal(t, created, f.CreatedAt)
	})

	t.Run("anonymous sender leaves no trace", func(t *testing.T) {
		f := NewFeedback(2, FeedbackDraft{RecipientName: "Bob", Body: "Great work on the release notes", IsAnonymous: true}, "Alice", created)
		assert.Equal(t, AnonymousSender, f.SenderName)
		assert.Equal(t, "Bob", f.RecipientName)

		raw, err := json.Marshal(f)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "Alice")
	})
}

func TestIDGenerator(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	gen := NewIDGenerator(func() time.Time { return now })

	first := gen.Next()
	second := gen.Next()
	assert.Equal(t, int64(1_700_000_000_000), first)
	assert.Equal(t, first+1, second, "same millisecond must still give a larger id")

	gen.Observe(1_800_000_000_000)
	assert.Equal(t, int64(1_800_000_000_001), gen.Next())
}
