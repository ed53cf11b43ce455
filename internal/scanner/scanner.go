// Package scanner defines the credential-discovery contract. A scanner
// inspects one external provider for credentials worth tracking and
// returns metadata descriptors; it never reads or stores secret
// values. Scanners whose SDK configuration is absent report themselves
// unavailable instead of failing, so the CLI degrades gracefully.
package scanner

import (
	"context"

	"github.com/keywarden/cli/internal/registry"
)

// Descriptor is one discovered credential's metadata, already shaped
// as dates and free-text fields.
type Descriptor struct {
	Name        string
	Provider    string
	Kind        string
	CreatedAt   string
	LastRotated string
	ExpiresAt   string
	Notes       string
}

// Scanner is a single provider integration.
type Scanner interface {
	// Name identifies the scanner in CLI output, e.g. "aws".
	Name() string

	// IsAvailable reports whether the scanner has what it needs to
	// run (credentials, SDK configuration). An unavailable scanner is
	// skipped, not an error.
	IsAvailable(ctx context.Context) bool

	// Scan discovers credentials and returns their metadata.
	Scan(ctx context.Context) ([]Descriptor, error)
}

// ToRegistryInput shapes descriptors into registry creation payloads.
// Discovered credentials keep the default rotation policy; the core
// add path applies validation and defaults exactly as for manual adds.
func ToRegistryInput(descriptors []Descriptor) []registry.AddInput {
	out := make([]registry.AddInput, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, registry.AddInput{
			Name:        d.Name,
			Provider:    d.Provider,
			Kind:        d.Kind,
			CreatedAt:   d.CreatedAt,
			LastRotated: d.LastRotated,
			ExpiresAt:   d.ExpiresAt,
			Notes:       d.Notes,
		})
	}
	return out
}
