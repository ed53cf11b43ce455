// Package registry owns the in-memory collection of tracked
// credentials and enforces its invariants: unique names, valid dates,
// and the free-tier size cap. All mutation goes through it, and every
// read reclassifies records fresh rather than trusting a stored status.
package registry

import (
	"time"

	"github.com/keywarden/cli/internal/credential"
)

// Tier gates registry capacity.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// FreeTierLimit is the maximum number of credentials a free-tier
// registry may hold.
const FreeTierLimit = 10

// DefaultRotationPolicyDays is applied when an add supplies no policy.
const DefaultRotationPolicyDays = 90

const (
	defaultProvider = "unknown"
	defaultKind     = "api_key"
)

// Persister writes a registry snapshot to durable storage. Mutating
// operations call it after the in-memory change succeeds; reads never
// do.
type Persister interface {
	Persist(tier string, secrets []credential.Credential) error
}

// Registry is an ordered collection of tracked credentials. Insertion
// order is preserved and is the natural display order. It is not safe
// for concurrent use; the tool is single-process and synchronous.
type Registry struct {
	tier      Tier
	secrets   []credential.Credential
	persister Persister
	now       func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// New builds a registry over an existing snapshot. A nil persister
// disables persistence (in-memory only).
func New(tier Tier, secrets []credential.Credential, persister Persister, opts ...Option) *Registry {
	if tier != TierPro {
		tier = TierFree
	}
	r := &Registry{
		tier:      tier,
		secrets:   append([]credential.Credential(nil), secrets...),
		persister: persister,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tier returns the registry's capacity tier.
func (r *Registry) Tier() Tier {
	return r.tier
}

// Len returns the number of tracked credentials.
func (r *Registry) Len() int {
	return len(r.secrets)
}

// AddInput is the creation payload for a tracked credential. Dates are
// YYYY-MM-DD strings; empty means absent. A nil RotationPolicyDays
// applies the default of 90; an explicit zero means no rotation
// requirement.
type AddInput struct {
	Name               string
	Provider           string
	Kind               string
	CreatedAt          string
	ExpiresAt          string
	LastRotated        string
	RotationPolicyDays *int
	Notes              string
}

// Add validates, defaults, classifies and appends a new credential.
// Validation happens before any mutation, so a failed Add leaves the
// registry untouched.
func (r *Registry) Add(in AddInput) (credential.Classified, error) {
	if in.Name == "" {
		return credential.Classified{}, validationErr("credential name is required")
	}
	for field, value := range map[string]string{
		"created": in.CreatedAt,
		"expires": in.ExpiresAt,
		"rotated": in.LastRotated,
	} {
		if value == "" {
			continue
		}
		if _, err := credential.ParseDate(value); err != nil {
			return credential.Classified{}, validationErr("invalid %s date %q: expected YYYY-MM-DD", field, value)
		}
	}
	if in.RotationPolicyDays != nil && *in.RotationPolicyDays < 0 {
		return credential.Classified{}, validationErr("rotation policy must be a positive number of days")
	}
	if r.indexOf(in.Name) >= 0 {
		return credential.Classified{}, duplicateErr(in.Name)
	}
	if r.tier == TierFree && len(r.secrets) >= FreeTierLimit {
		return credential.Classified{}, tierLimitErr(FreeTierLimit)
	}

	now := r.now()
	c := credential.Credential{
		Name:        in.Name,
		Provider:    in.Provider,
		Kind:        in.Kind,
		CreatedAt:   in.CreatedAt,
		ExpiresAt:   in.ExpiresAt,
		LastRotated: in.LastRotated,
		Notes:       in.Notes,
	}
	if c.Provider == "" {
		c.Provider = defaultProvider
	}
	if c.Kind == "" {
		c.Kind = defaultKind
	}
	if c.CreatedAt == "" {
		c.CreatedAt = credential.DateOf(now).Format(credential.DateLayout)
	}
	if c.LastRotated == "" {
		c.LastRotated = c.CreatedAt
	}
	if in.RotationPolicyDays != nil {
		c.RotationPolicyDays = *in.RotationPolicyDays
	} else {
		c.RotationPolicyDays = DefaultRotationPolicyDays
	}

	classified := credential.Classify(c, now)
	r.secrets = append(r.secrets, classified.Credential)
	if err := r.persist(); err != nil {
		return classified, err
	}
	return classified, nil
}

// Remove deletes a credential by name and returns it.
func (r *Registry) Remove(name string) (credential.Credential, error) {
	i := r.indexOf(name)
	if i < 0 {
		return credential.Credential{}, notFoundErr(name)
	}
	removed := r.secrets[i]
	r.secrets = append(r.secrets[:i], r.secrets[i+1:]...)
	if err := r.persist(); err != nil {
		return removed, err
	}
	return removed, nil
}

// Get returns a credential with a freshly computed status.
func (r *Registry) Get(name string) (credential.Classified, error) {
	i := r.indexOf(name)
	if i < 0 {
		return credential.Classified{}, notFoundErr(name)
	}
	return credential.Classify(r.secrets[i], r.now()), nil
}

// List returns every credential, freshly classified, in insertion
// order. Filtering is the caller's business.
func (r *Registry) List() []credential.Classified {
	now := r.now()
	out := make([]credential.Classified, 0, len(r.secrets))
	for _, c := range r.secrets {
		out = append(out, credential.Classify(c, now))
	}
	return out
}

// Rotate marks a credential as rotated today and reclassifies it.
func (r *Registry) Rotate(name string) (credential.Classified, error) {
	i := r.indexOf(name)
	if i < 0 {
		return credential.Classified{}, notFoundErr(name)
	}
	now := r.now()
	r.secrets[i].LastRotated = credential.DateOf(now).Format(credential.DateLayout)
	classified := credential.Classify(r.secrets[i], now)
	r.secrets[i] = classified.Credential
	if err := r.persist(); err != nil {
		return classified, err
	}
	return classified, nil
}

// UpdateInput is a field-by-field merge payload: nil leaves a field
// untouched, a non-nil value overwrites it (last write wins). Setting
// ExpiresAt to an empty string clears the expiry; setting
// RotationPolicyDays to zero clears the rotation requirement. There is
// no dynamic shape merging: only the fields named here exist.
type UpdateInput struct {
	Provider           *string
	Kind               *string
	CreatedAt          *string
	ExpiresAt          *string
	LastRotated        *string
	RotationPolicyDays *int
	Notes              *string
}

// Update merges the supplied fields into an existing credential. Like
// Add, it validates before mutating.
func (r *Registry) Update(name string, in UpdateInput) (credential.Classified, error) {
	i := r.indexOf(name)
	if i < 0 {
		return credential.Classified{}, notFoundErr(name)
	}
	for field, value := range map[string]*string{
		"created": in.CreatedAt,
		"expires": in.ExpiresAt,
		"rotated": in.LastRotated,
	} {
		if value == nil || *value == "" {
			continue
		}
		if _, err := credential.ParseDate(*value); err != nil {
			return credential.Classified{}, validationErr("invalid %s date %q: expected YYYY-MM-DD", field, *value)
		}
	}
	if in.RotationPolicyDays != nil && *in.RotationPolicyDays < 0 {
		return credential.Classified{}, validationErr("rotation policy must be a positive number of days")
	}

	c := r.secrets[i]
	if in.Provider != nil {
		c.Provider = *in.Provider
	}
	if in.Kind != nil {
		c.Kind = *in.Kind
	}
	if in.CreatedAt != nil {
		c.CreatedAt = *in.CreatedAt
	}
	if in.ExpiresAt != nil {
		c.ExpiresAt = *in.ExpiresAt
	}
	if in.LastRotated != nil {
		c.LastRotated = *in.LastRotated
	}
	if in.RotationPolicyDays != nil {
		c.RotationPolicyDays = *in.RotationPolicyDays
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}

	classified := credential.Classify(c, r.now())
	r.secrets[i] = classified.Credential
	if err := r.persist(); err != nil {
		return classified, err
	}
	return classified, nil
}

// Buckets partitions credentials by status, each bucket preserving the
// registry's insertion order.
type Buckets struct {
	Healthy  []credential.Classified
	Warning  []credential.Classified
	Critical []credential.Classified
	Expired  []credential.Classified
}

// Categorize returns the full listing partitioned by status.
func (r *Registry) Categorize() Buckets {
	var b Buckets
	for _, c := range r.List() {
		switch c.Evaluation.Status {
		case credential.StatusExpired:
			b.Expired = append(b.Expired, c)
		case credential.StatusCritical:
			b.Critical = append(b.Critical, c)
		case credential.StatusWarning:
			b.Warning = append(b.Warning, c)
		default:
			b.Healthy = append(b.Healthy, c)
		}
	}
	return b
}

// Snapshot returns a copy of the stored records, suitable for
// persistence. Statuses reflect the last classification.
func (r *Registry) Snapshot() []credential.Credential {
	return append([]credential.Credential(nil), r.secrets...)
}

func (r *Registry) indexOf(name string) int {
	for i, c := range r.secrets {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (r *Registry) persist() error {
	if r.persister == nil {
		return nil
	}
	if err := r.persister.Persist(string(r.tier), r.Snapshot()); err != nil {
		return persistenceErr(err)
	}
	return nil
}
