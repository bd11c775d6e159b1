package entities

import "time"

// DenyReason explains why an access decision denied a mutation.
type DenyReason string

const (
	DenyReasonNone      DenyReason = ""
	DenyReasonRole      DenyReason = "role"
	DenyReasonOwnership DenyReason = "ownership"
	DenyReasonExpired   DenyReason = "expired"
)

// AccessDecision is returned by every authorization primitive.
// Denials always carry a typed reason, never a bare boolean.
type AccessDecision struct {
	Allowed   bool       `json:"allowed"`
	Reason    DenyReason `json:"reason,omitempty"`
	CheckedAt time.Time  `json:"checked_at"`
}

// Allow builds a positive decision evaluated at the given instant.
func Allow(now time.Time) AccessDecision {
	return AccessDecision{Allowed: true, CheckedAt: now}
}

// Deny builds a negative decision with its reason.
func Deny(reason DenyReason, now time.Time) AccessDecision {
	return AccessDecision{Allowed: false, Reason: reason, CheckedAt: now}
}
