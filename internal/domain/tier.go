package domain

import (
	"encoding"
	"errors"
)

// Tier is the ordered privilege level of a team member.
type Tier int

const (
	// TierMember can only read feedback addressed to themselves.
	TierMember Tier = iota

	// TierAdmin can read all feedback and manage plain members.
	TierAdmin

	// TierSuperAdmin can manage everyone but themselves and grant any tier.
	TierSuperAdmin
)

// TierInvalid is returned by ParseTier for unknown input. It satisfies no check.
const TierInvalid Tier = -1

// ErrInvalidTier is returned when an unknown tier is decoded.
var ErrInvalidTier = errors.New("invalid tier")

func (t Tier) String() string {
	switch t {
	case TierMember:
		return "member"
	case TierAdmin:
		return "admin"
	case TierSuperAdmin:
		return "super-admin"
	default:
		return "unknown"
	}
}

// ParseTier parses a tier string.
func ParseTier(s string) Tier {
	switch s {
	case "member":
		return TierMember
	case "admin":
		return TierAdmin
	case "super-admin":
		return TierSuperAdmin
	default:
		return TierInvalid
	}
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	return t >= TierMember && t <= TierSuperAdmin
}

// AtLeast reports whether t grants every privilege of other.
// An invalid tier never satisfies anything.
func (t Tier) AtLeast(other Tier) bool {
	if !t.Valid() || !other.Valid() {
		return false
	}
	return t >= other
}

var (
	_ encoding.TextMarshaler   = Tier(0)
	_ encoding.TextUnmarshaler = (*Tier)(nil)
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	tier := ParseTier(string(text))
	if !tier.Valid() {
		return ErrInvalidTier
	}

	*t = tier
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrInvalidTier
	}
	return []byte(t.String()), nil
}
