package github

import (
	"context"
	"errors"

	"github.com/sevigo/mamba-review/internal/core"
)

type commentPublisher struct {
	client Client
}

// NewCommentPublisher returns a core.CommentPublisher that posts to the
// event's issue.
func NewCommentPublisher(client Client) core.CommentPublisher {
	return &commentPublisher{client: client}
}

func (p *commentPublisher) Publish(ctx context.Context, event *core.TriggerEvent, body string) error {
	if event.RepoOwner == "" || event.RepoName == "" {
		return errors.New("event has no repository to comment on")
	}
	return p.client.CreateComment(ctx, event.RepoOwner, event.RepoName, event.IssueNumber, body)
}
