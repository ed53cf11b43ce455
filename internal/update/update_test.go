package update

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    bool
	}{
		{"1.0.0", "1.0.1", true},
		{"1.0.0", "1.1.0", true},
		{"1.0.0", "2.0.0", true},
		{"v1.2.3", "v1.2.4", true},
		{"1.2.3", "1.2.3", false},
		{"1.2.4", "1.2.3", false},
		{"2.0.0", "1.9.9", false},
		{"1.2", "1.2.1", true},
		{"1.2.0", "1.2", false},
		{"dev", "1.0.0", false},
		{"1.0.0", "nightly", false},
		{"", "1.0.0", false},
	}
	for _, tt := range tests {
		if got := IsNewer(tt.current, tt.latest); got != tt.want {
			t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
		}
	}
}

func TestLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/keywarden/cli/releases/latest" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"tag_name":"v1.4.0","html_url":"https://github.com/keywarden/cli/releases/tag/v1.4.0"}`)
	}))
	defer server.Close()

	c, err := NewCheckerWithBaseURL(server.Client(), server.URL+"/", "keywarden", "cli")
	if err != nil {
		t.Fatalf("NewCheckerWithBaseURL returned error: %v", err)
	}

	tag, url, err := c.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if tag != "v1.4.0" {
		t.Errorf("tag = %q, want %q", tag, "v1.4.0")
	}
	if url != "https://github.com/keywarden/cli/releases/tag/v1.4.0" {
		t.Errorf("url = %q", url)
	}
}

func TestLatest_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	}))
	defer server.Close()

	c, err := NewCheckerWithBaseURL(server.Client(), server.URL+"/", "keywarden", "cli")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := c.Latest(context.Background()); err == nil {
		t.Fatal("Latest succeeded, want error")
	}
}
