// Package credential defines the tracked-credential record and the
// status classification engine. A tracked credential is metadata about
// a secret (dates, provider, rotation policy) -- never the secret value.
package credential

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date grammar used by every date field.
// Dates carry no time component.
const DateLayout = "2006-01-02"

// Credential is metadata about a single tracked secret.
type Credential struct {
	// Name uniquely identifies the credential within a registry.
	Name string `json:"name"`

	// Provider is free text, e.g. "stripe", "aws", "github".
	Provider string `json:"provider"`

	// Kind is a free-text category, e.g. "api_key", "token", "password".
	Kind string `json:"kind"`

	// CreatedAt is the date the credential was issued (YYYY-MM-DD).
	CreatedAt string `json:"createdAt"`

	// ExpiresAt is the expiry date, or empty for "never expires".
	ExpiresAt string `json:"expiresAt,omitempty"`

	// LastRotated is the date of the most recent rotation.
	LastRotated string `json:"lastRotated,omitempty"`

	// RotationPolicyDays is the target maximum days between rotations.
	// Zero means no rotation requirement.
	RotationPolicyDays int `json:"rotationPolicyDays,omitempty"`

	// Notes is free text.
	Notes string `json:"notes,omitempty"`

	// Status is a display cache of the last classification. It is
	// never a source of truth; readers must recompute via Evaluate.
	Status Status `json:"status,omitempty"`
}

// ParseDate parses a YYYY-MM-DD date, rejecting anything that does not
// resolve to a real calendar date (month 1-12, day valid for the month).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// DateOf truncates an instant to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseDateOK is the tolerant variant used by the status engine:
// malformed stored dates degrade to absent rather than failing.
func parseDateOK(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
