package credential

import (
	"fmt"
	"math"
	"time"
)

// Status is the health classification of a tracked credential.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
	StatusExpired  Status = "expired"
)

// Rank orders statuses by severity: healthy < warning < critical < expired.
func (s Status) Rank() int {
	switch s {
	case StatusWarning:
		return 1
	case StatusCritical:
		return 2
	case StatusExpired:
		return 3
	default:
		return 0
	}
}

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// Evaluation is the output of the status engine for one credential at
// one instant.
type Evaluation struct {
	Status          Status `json:"-"`
	AgeDays         *int   `json:"age"`
	DaysUntilExpiry *int   `json:"daysUntilExpiry"`
	Message         string `json:"statusMessage"`
}

// Classified is a credential together with its fresh evaluation. The
// embedded Credential's Status field is overwritten with the computed
// value, so serialized output always reflects the evaluation.
type Classified struct {
	Credential
	Evaluation
}

// expiry thresholds and the rotation warning fraction.
const (
	criticalExpiryDays = 7
	warningExpiryDays  = 30
	rotationWarnRatio  = 0.75
)

// Evaluate classifies a credential at the given instant. It is pure and
// total: it never fails, and malformed stored dates are treated as
// absent rather than raising an error.
//
// Rule order is strict and first-match-wins. Expiry rules are always
// consulted before rotation rules: a credential within 30 days of
// expiry is classified purely by expiry, however overdue its rotation,
// while a credential with a comfortable expiry window still falls
// through to rotation-policy evaluation.
func Evaluate(c Credential, now time.Time) Evaluation {
	today := DateOf(now)

	var ageDays, daysUntilExpiry *int

	lastRotated, hasRotated := parseDateOK(c.LastRotated)
	if hasRotated {
		ageDays = ptr(ceilDays(today.Sub(lastRotated)))
	} else if created, ok := parseDateOK(c.CreatedAt); ok {
		ageDays = ptr(ceilDays(today.Sub(created)))
	}

	expires, hasExpiry := parseDateOK(c.ExpiresAt)
	if hasExpiry {
		daysUntilExpiry = ptr(ceilDays(expires.Sub(today)))
	}

	policy := c.RotationPolicyDays
	rotationApplies := policy > 0 && hasRotated && ageDays != nil

	var status Status
	switch {
	case hasExpiry && expires.Before(today):
		status = StatusExpired
	case hasExpiry && *daysUntilExpiry < criticalExpiryDays:
		status = StatusCritical
	case hasExpiry && *daysUntilExpiry < warningExpiryDays:
		status = StatusWarning
	case rotationApplies && *ageDays > policy:
		status = StatusCritical
	case rotationApplies && float64(*ageDays) > rotationWarnRatio*float64(policy):
		status = StatusWarning
	default:
		status = StatusHealthy
	}

	return Evaluation{
		Status:          status,
		AgeDays:         ageDays,
		DaysUntilExpiry: daysUntilExpiry,
		Message:         message(status, ageDays, daysUntilExpiry, policy),
	}
}

// Classify evaluates a credential and pairs it with the result.
func Classify(c Credential, now time.Time) Classified {
	eval := Evaluate(c, now)
	c.Status = eval.Status
	return Classified{Credential: c, Evaluation: eval}
}

// message synthesizes the human-readable reason for a status. The first
// applicable branch for the status wins, mirroring the rule order in
// Evaluate.
func message(status Status, ageDays, daysUntilExpiry *int, policy int) string {
	switch status {
	case StatusExpired:
		n := 0
		if daysUntilExpiry != nil {
			n = -*daysUntilExpiry
		}
		return fmt.Sprintf("Expired %d days ago", n)
	case StatusCritical:
		if daysUntilExpiry != nil && *daysUntilExpiry < criticalExpiryDays {
			if *daysUntilExpiry == 1 {
				return "Expires in 1 day"
			}
			return fmt.Sprintf("Expires in %d days", *daysUntilExpiry)
		}
		if policy > 0 && ageDays != nil && *ageDays > policy {
			return fmt.Sprintf("Past rotation policy by %d days", *ageDays-policy)
		}
		return "Critical"
	case StatusWarning:
		if daysUntilExpiry != nil && *daysUntilExpiry < warningExpiryDays {
			return fmt.Sprintf("Expires in %d days", *daysUntilExpiry)
		}
		if policy > 0 && ageDays != nil {
			return fmt.Sprintf("%d days until rotation due", policy-*ageDays)
		}
		return "Warning"
	default:
		return "Healthy"
	}
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}

func ptr(n int) *int {
	return &n
}
