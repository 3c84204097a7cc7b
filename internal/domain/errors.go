package domain

import "errors"

var (
	ErrMemberNotFound     = errors.New("team member not found")
	ErrForbidden          = errors.New("action not permitted for current member")
	ErrModerationRejected = errors.New("feedback rejected by moderation")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("current member is not identified")
)
