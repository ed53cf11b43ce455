package scanner

import (
	"testing"
)

func TestToRegistryInput(t *testing.T) {
	descriptors := []Descriptor{
		{
			Name:        "aws-akiaexample",
			Provider:    "aws",
			Kind:        "access_key",
			CreatedAt:   "2026-03-10",
			LastRotated: "2026-03-10",
			Notes:       "IAM access key for deploy-bot (Active)",
		},
		{
			Name:      "github-pat-octocat",
			Provider:  "github",
			Kind:      "pat",
			ExpiresAt: "2026-11-20",
		},
	}

	got := ToRegistryInput(descriptors)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "aws-akiaexample" || got[0].LastRotated != "2026-03-10" {
		t.Errorf("first input = %+v", got[0])
	}
	if got[1].ExpiresAt != "2026-11-20" {
		t.Errorf("second input ExpiresAt = %q, want %q", got[1].ExpiresAt, "2026-11-20")
	}
	// Discovered credentials inherit the default rotation policy.
	if got[0].RotationPolicyDays != nil {
		t.Errorf("RotationPolicyDays = %v, want nil (registry default)", got[0].RotationPolicyDays)
	}
}

func TestToRegistryInput_Empty(t *testing.T) {
	if got := ToRegistryInput(nil); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
