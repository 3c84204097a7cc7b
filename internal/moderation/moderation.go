// Package moderation screens feedback text before it is accepted.
package moderation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ZertGraf/team-feedback/internal/domain"
)

// DefaultMinLength is the shortest feedback considered constructive.
const DefaultMinLength = 20

// DefaultTerms is the blocklist, in the order it is checked.
var DefaultTerms = []string{
	"stupid", "idiot", "hate", "terrible", "awful", "sucks",
	"useless", "incompetent", "failure", "worthless",
}

// Gate decides whether feedback text may be stored.
type Gate interface {
	Evaluate(text string) Verdict
}

// Verdict is the outcome of a single evaluation.
type Verdict struct {
	Accepted bool
	Reason   string
	Term     string // blocklisted term that matched, if any
}

// Err returns nil for an accepted verdict and a *RejectedError otherwise.
func (v Verdict) Err() error {
	if v.Accepted {
		return nil
	}
	return &RejectedError{Reason: v.Reason, Term: v.Term}
}

// RejectedError carries the reason surfaced to the submitter.
type RejectedError struct {
	Reason string
	Term   string
}

func (e *RejectedError) Error() string {
	return e.Reason
}

// Is makes errors.Is(err, domain.ErrModerationRejected) hold.
func (e *RejectedError) Is(target error) bool {
	return target == domain.ErrModerationRejected
}

// AsRejected unwraps a *RejectedError from err.
func AsRejected(err error) (*RejectedError, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}

// Blocklist rejects text containing a listed term, then text that is too short.
// Matching is a case-insensitive substring search, so "incompetently"
// matches "incompetent".
type Blocklist struct {
	terms     []string
	minLength int
}

// NewBlocklist builds a gate. Empty terms fall back to DefaultTerms and a
// non-positive minLength to DefaultMinLength.
func NewBlocklist(terms []string, minLength int) *Blocklist {
	if len(terms) == 0 {
		terms = DefaultTerms
	}
	if minLength <= 0 {
		minLength = DefaultMinLength
	}

	lowered := make([]string, 0, len(terms))
	for _, term := range terms {
		if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
			lowered = append(lowered, term)
		}
	}

	return &Blocklist{terms: lowered, minLength: minLength}
}

// Evaluate applies the rules in order; the first match wins.
func (b *Blocklist) Evaluate(text string) Verdict {
	lower := strings.ToLower(text)
	for _, term := range b.terms {
		if strings.Contains(lower, term) {
			return Verdict{
				Reason: fmt.Sprintf("The feedback contains potentially harmful language: %q. Please revise to be more constructive.", term),
				Term:   term,
			}
		}
	}

	if utf8.RuneCountInString(text) < b.minLength {
		return Verdict{
			Reason: "Feedback is too brief. Please provide more detailed and constructive feedback.",
		}
	}

	return Verdict{Accepted: true}
}

var _ Gate = (*Blocklist)(nil)
