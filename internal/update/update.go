// Package update checks GitHub releases for a newer keywarden build.
// The check is advisory: network failures are reported, never fatal.
package update

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v82/github"
)

const (
	defaultOwner = "keywarden"
	defaultRepo  = "cli"
)

// Checker looks up the latest published release.
type Checker struct {
	client *gh.Client
	owner  string
	repo   string
}

// NewChecker builds a checker against the public GitHub API. Release
// lookups need no authentication.
func NewChecker() *Checker {
	return &Checker{client: gh.NewClient(nil), owner: defaultOwner, repo: defaultRepo}
}

// NewCheckerWithBaseURL builds a checker against an explicit API base
// URL, for tests.
func NewCheckerWithBaseURL(httpClient *http.Client, baseURL, owner, repo string) (*Checker, error) {
	client := gh.NewClient(httpClient)
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	client.BaseURL = u
	return &Checker{client: client, owner: owner, repo: repo}, nil
}

// Latest returns the latest release tag and its HTML URL.
func (c *Checker) Latest(ctx context.Context) (tag, url string, err error) {
	release, _, err := c.client.Repositories.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		return "", "", fmt.Errorf("failed to check for updates: %w", err)
	}
	return release.GetTagName(), release.GetHTMLURL(), nil
}

// IsNewer reports whether latest is a strictly newer version than
// current, comparing dotted numeric segments. Non-numeric or
// unparseable versions (like "dev" builds) are never outdated.
func IsNewer(current, latest string) bool {
	cur, ok := parseVersion(current)
	if !ok {
		return false
	}
	lat, ok := parseVersion(latest)
	if !ok {
		return false
	}
	for i := 0; i < len(cur) || i < len(lat); i++ {
		c, l := 0, 0
		if i < len(cur) {
			c = cur[i]
		}
		if i < len(lat) {
			l = lat[i]
		}
		if l != c {
			return l > c
		}
	}
	return false
}

func parseVersion(v string) ([]int, bool) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if v == "" {
		return nil, false
	}
	parts := strings.Split(v, ".")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		nums = append(nums, n)
	}
	return nums, true
}
