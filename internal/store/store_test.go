package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/keywarden/cli/internal/credential"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	f := Open(path)

	doc := &Document{
		Version: Version,
		Tier:    "free",
		Secrets: []credential.Credential{
			{
				Name:               "stripe-prod",
				Provider:           "stripe",
				Kind:               "api_key",
				CreatedAt:          "2026-01-10",
				ExpiresAt:          "2026-12-31",
				LastRotated:        "2026-06-01",
				RotationPolicyDays: 90,
				Notes:              "primary billing key",
				Status:             credential.StatusHealthy,
			},
			{Name: "gh-pat", Provider: "github", Kind: "pat", CreatedAt: "2026-03-01"},
		},
	}

	if err := f.Save(doc); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round-trip mismatch:\ngot  %+v\nwant %+v", got, doc)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	f := Open(filepath.Join(t.TempDir(), "nope.json"))
	_, err := f.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestLoad_CorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path).Load()
	if err == nil {
		t.Fatal("Load succeeded on corrupt file, want error")
	}
}

func TestLoad_DefaultsTier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	if err := os.WriteFile(path, []byte(`{"version":1,"secrets":[]}`), 0600); err != nil {
		t.Fatal(err)
	}
	doc, err := Open(path).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if doc.Tier != "free" {
		t.Errorf("Tier = %q, want %q", doc.Tier, "free")
	}
}

func TestCreate_RefusesToClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	if _, err := Create(path, "free", false); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	if _, err := Create(path, "free", false); err == nil {
		t.Error("second Create succeeded, want error without force")
	}
	if _, err := Create(path, "pro", true); err != nil {
		t.Errorf("forced Create returned error: %v", err)
	}

	doc, err := Open(path).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if doc.Tier != "pro" {
		t.Errorf("Tier = %q, want %q after forced reinit", doc.Tier, "pro")
	}
}

func TestCreate_MakesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "secrets.json")
	if _, err := Create(path, "free", false); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("store file not created: %v", err)
	}
}

func TestResolve_PrefersLocalOverGlobal(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	// Neither exists yet.
	if _, err := Resolve(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}

	global, err := GlobalPath()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Create(global, "free", false); err != nil {
		t.Fatal(err)
	}

	f, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if f.Path() != global {
		t.Errorf("Path = %q, want global %q", f.Path(), global)
	}

	if _, err := Create(LocalPath(), "free", false); err != nil {
		t.Fatal(err)
	}
	f, err = Resolve()
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if f.Path() != LocalPath() {
		t.Errorf("Path = %q, want local %q", f.Path(), LocalPath())
	}
}

func TestPersist_WritesRegistrySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	f := Open(path)

	secrets := []credential.Credential{{Name: "a", Provider: "aws", Kind: "access_key", CreatedAt: "2026-05-01"}}
	if err := f.Persist("free", secrets); err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}

	doc, err := f.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if doc.Version != Version {
		t.Errorf("Version = %d, want %d", doc.Version, Version)
	}
	if len(doc.Secrets) != 1 || doc.Secrets[0].Name != "a" {
		t.Errorf("Secrets = %+v, want the persisted snapshot", doc.Secrets)
	}
}
