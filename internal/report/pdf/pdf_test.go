package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/keywarden/cli/internal/credential"
)

var pdfNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func day(n int) string {
	return credential.DateOf(pdfNow).AddDate(0, 0, n).Format(credential.DateLayout)
}

func classify(c credential.Credential) credential.Classified {
	return credential.Classify(c, pdfNow)
}

func TestWrite_ProducesPDF(t *testing.T) {
	records := []credential.Classified{
		classify(credential.Credential{Name: "stripe-prod", Provider: "stripe", Kind: "api_key", CreatedAt: day(-10), LastRotated: day(-10), RotationPolicyDays: 90}),
		classify(credential.Credential{Name: "gh-pat", Provider: "github", Kind: "pat", CreatedAt: day(-100), LastRotated: day(-100), RotationPolicyDays: 90}),
		classify(credential.Credential{Name: "legacy", Provider: "aws", Kind: "token", CreatedAt: day(-400), ExpiresAt: day(-30)}),
		classify(credential.Credential{Name: "expiring", Provider: "gcp", Kind: "api_key", CreatedAt: day(-20), ExpiresAt: day(4)}),
	}

	var buf bytes.Buffer
	if err := Write(&buf, records, pdfNow); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("Write produced no output")
	}
	if !strings.HasPrefix(buf.String(), "%PDF") {
		t.Errorf("output does not start with %%PDF header: %q", buf.String()[:8])
	}
}

func TestWrite_EmptyInventory(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, pdfNow); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF") {
		t.Error("empty-inventory output is not a PDF")
	}
}

func TestRecommendation(t *testing.T) {
	tests := []struct {
		name string
		c    credential.Credential
		want string
	}{
		{
			name: "expired",
			c:    credential.Credential{Name: "a", CreatedAt: day(-100), ExpiresAt: day(-5)},
			want: "Rotate or revoke immediately",
		},
		{
			name: "critical expiry",
			c:    credential.Credential{Name: "b", CreatedAt: day(-10), ExpiresAt: day(3)},
			want: "Renew within 3 days",
		},
		{
			name: "critical rotation",
			c:    credential.Credential{Name: "c", CreatedAt: day(-120), LastRotated: day(-120), RotationPolicyDays: 90},
			want: "Rotate now",
		},
		{
			name: "warning expiry",
			c:    credential.Credential{Name: "d", CreatedAt: day(-10), ExpiresAt: day(20)},
			want: "Schedule a renewal before " + day(20),
		},
		{
			name: "warning rotation",
			c:    credential.Credential{Name: "e", CreatedAt: day(-80), LastRotated: day(-80), RotationPolicyDays: 90},
			want: "Plan a rotation soon",
		},
	}
	for _, tt := range tests {
		got := Recommendation(classify(tt.c))
		if !strings.Contains(got, tt.want) {
			t.Errorf("%s: Recommendation = %q, want it to contain %q", tt.name, got, tt.want)
		}
	}
}
