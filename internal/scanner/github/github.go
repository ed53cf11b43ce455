// Package github discovers the personal access token the keywarden
// process itself is configured with and shapes its metadata into a
// tracked-credential descriptor. GitHub reports a fine-grained token's
// expiry in a response header; the token value is read from the
// environment only to authenticate the lookup and is never persisted.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	gh "github.com/google/go-github/v82/github"

	"github.com/keywarden/cli/internal/credential"
	"github.com/keywarden/cli/internal/scanner"
)

// tokenEnvVars are checked in order for a PAT to inspect.
var tokenEnvVars = []string{"GITHUB_TOKEN", "GH_TOKEN"}

// Scanner inspects the ambient GitHub PAT.
type Scanner struct {
	client *gh.Client
	token  string
	log    *slog.Logger
}

// New builds a scanner over the PAT found in the environment, if any.
func New(log *slog.Logger) *Scanner {
	s := &Scanner{log: log}
	for _, env := range tokenEnvVars {
		if v := os.Getenv(env); v != "" {
			s.token = v
			break
		}
	}
	if s.token != "" {
		s.client = gh.NewClient(nil).WithAuthToken(s.token)
	}
	return s
}

// NewWithBaseURL builds a scanner against an explicit API base URL,
// for tests and GitHub Enterprise instances.
func NewWithBaseURL(httpClient *http.Client, baseURL, token string, log *slog.Logger) (*Scanner, error) {
	client := gh.NewClient(httpClient).WithAuthToken(token)
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	client.BaseURL = u
	return &Scanner{client: client, token: token, log: log}, nil
}

// Name implements scanner.Scanner.
func (s *Scanner) Name() string {
	return "github"
}

// IsAvailable reports whether a token was found in the environment.
func (s *Scanner) IsAvailable(ctx context.Context) bool {
	return s.token != ""
}

// Scan looks up the authenticated user and shapes the token's metadata
// into a descriptor. Classic PATs without an expiry produce a record
// that never expires.
func (s *Scanner) Scan(ctx context.Context) ([]scanner.Descriptor, error) {
	user, resp, err := s.client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to look up token owner: %w", err)
	}

	d := scanner.Descriptor{
		Name:     fmt.Sprintf("github-pat-%s", user.GetLogin()),
		Provider: "github",
		Kind:     "pat",
	}
	if !resp.TokenExpiration.Time.IsZero() {
		d.ExpiresAt = credential.DateOf(resp.TokenExpiration.Time).Format(credential.DateLayout)
	}
	if scopes := resp.Header.Get("X-OAuth-Scopes"); scopes != "" {
		d.Notes = fmt.Sprintf("scopes: %s", scopes)
	}

	s.log.Info("github scan complete", "login", user.GetLogin(), "expires", d.ExpiresAt)
	return []scanner.Descriptor{d}, nil
}
