// Package github posts review comments and decodes trigger events.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"
)

// Client is the subset of the GitHub API this application talks to.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubClient wraps a go-github client.
func NewGitHubClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewPATClient creates a client authenticated with a personal access token or
// the GITHUB_TOKEN issued to a workflow run. apiURL overrides the REST base
// URL; empty means api.github.com.
func NewPATClient(ctx context.Context, token, apiURL string, timeout time.Duration, logger *slog.Logger) (Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = timeout

	client, err := newRESTClient(tc, apiURL)
	if err != nil {
		return nil, err
	}
	return NewGitHubClient(client, logger), nil
}

func newRESTClient(httpClient *http.Client, apiURL string) (*github.Client, error) {
	client := github.NewClient(httpClient)
	if apiURL == "" {
		return client, nil
	}

	base, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
	}
	client.BaseURL = base
	return client, nil
}

// CreateComment posts body as a new comment on the issue or pull request.
func (g *gitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}
	created, _, err := g.client.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		g.logger.Error("failed to create comment", "owner", owner, "repo", repo, "issue", number, "error", err)
		return err
	}
	g.logger.Info("comment posted", "owner", owner, "repo", repo, "issue", number, "url", created.GetHTMLURL())
	return nil
}
