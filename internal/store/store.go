// Package store is the persistence collaborator for the credential
// registry: a single JSON file holding {version, tier, secrets}. A
// local store file takes precedence over the global one under the
// user's home directory. Load returns a File handle that remembers
// which path was read, so saves always go back to the same place.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/keywarden/cli/internal/credential"
)

// Version is the current store file format version.
const Version = 1

// ErrNotFound is returned when no store file exists at any known
// location.
var ErrNotFound = errors.New("no credential store found (run 'keywarden init' first)")

// Document is the persisted shape of a registry snapshot. Statuses
// inside Secrets are a display cache only; readers reclassify.
type Document struct {
	Version int                     `json:"version"`
	Tier    string                  `json:"tier"`
	Secrets []credential.Credential `json:"secrets"`
}

// File is a handle to one resolved store location.
type File struct {
	path string
}

// Path returns the file's location on disk.
func (f *File) Path() string {
	return f.path
}

// LocalPath returns the per-project store file name, resolved against
// the current directory.
func LocalPath() string {
	return ".keywarden.json"
}

// GlobalPath returns the store file under the user's home directory
// (~/.keywarden/secrets.json).
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".keywarden", "secrets.json"), nil
}

// Resolve locates an existing store, preferring the local file over
// the global one. Returns ErrNotFound when neither exists.
func Resolve() (*File, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return &File{path: LocalPath()}, nil
	}
	global, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(global); err == nil {
		return &File{path: global}, nil
	}
	return nil, ErrNotFound
}

// Open returns a handle to an explicit path, whether or not the file
// exists yet.
func Open(path string) *File {
	return &File{path: path}
}

// Create initializes a new empty store at the given path. Refuses to
// overwrite an existing file unless force is set.
func Create(path, tier string, force bool) (*File, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("store already exists at %s (use --force to reinitialize)", path)
		}
	}
	f := &File{path: path}
	if err := f.Save(&Document{Version: Version, Tier: tier, Secrets: []credential.Credential{}}); err != nil {
		return nil, err
	}
	return f, nil
}

// Load reads and decodes the store file.
func (f *File) Load() (*Document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read credential store %s: %w", f.path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("credential store %s is corrupt: %w", f.path, err)
	}
	if doc.Tier == "" {
		doc.Tier = "free"
	}
	return &doc, nil
}

// Save writes the document back to the handle's path, creating the
// parent directory with restrictive permissions if needed.
func (f *File) Save(doc *Document) error {
	dir := filepath.Dir(f.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credential store: %w", err)
	}

	// Owner read/write only: the file holds metadata, not secrets, but
	// names and providers are still nobody else's business.
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credential store: %w", err)
	}
	return nil
}

// Persist implements the registry's persistence collaborator contract.
func (f *File) Persist(tier string, secrets []credential.Credential) error {
	return f.Save(&Document{Version: Version, Tier: tier, Secrets: secrets})
}
