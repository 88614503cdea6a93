package gitutil

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// PullRequestRef identifies a single pull request.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

// ParseRepository splits an "owner/repo" slug as found in GITHUB_REPOSITORY.
func ParseRepository(slug string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(slug), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q: want owner/repo", slug)
	}
	return owner, repo, nil
}

// ParsePullRequestURL extracts owner, repo and number from a pull request URL
// of the form [https://]<host>/<owner>/<repo>/pull/<number>. Any host is
// accepted so GitHub Enterprise links work too.
func ParsePullRequestURL(raw string) (PullRequestRef, error) {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "/")
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return PullRequestRef{}, fmt.Errorf("invalid pull request URL %q: %w", raw, err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 4 || parts[2] != "pull" || parts[0] == "" || parts[1] == "" {
		return PullRequestRef{}, fmt.Errorf("invalid pull request URL format: %s", raw)
	}

	number, err := strconv.Atoi(parts[3])
	if err != nil || number <= 0 {
		return PullRequestRef{}, fmt.Errorf("invalid pull request number %q", parts[3])
	}
	return PullRequestRef{Owner: parts[0], Repo: parts[1], Number: number}, nil
}
