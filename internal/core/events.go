// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"errors"
	"fmt"

	"github.com/google/go-github/v73/github"
)

// ErrMissingCommentBody is returned when the triggering payload has no comment body.
var ErrMissingCommentBody = errors.New("comment.body is missing from the event payload")

// TriggerEvent is the internal view of the issue_comment event that started a review.
// Only CommentBody and IssueNumber are required; the repository fields are filled
// when the payload carries them.
type TriggerEvent struct {
	CommentBody string
	IssueNumber int

	RepoOwner string
	RepoName  string
	Commenter string
}

// EventFromIssueComment converts a raw GitHub IssueCommentEvent into a TriggerEvent.
// It rejects payloads without a comment body or a positive issue number.
func EventFromIssueComment(event *github.IssueCommentEvent) (*TriggerEvent, error) {
	if event == nil {
		return nil, fmt.Errorf("event payload is empty")
	}
	if event.GetComment() == nil || event.GetComment().Body == nil {
		return nil, ErrMissingCommentBody
	}

	number := event.GetIssue().GetNumber()
	if number <= 0 {
		return nil, fmt.Errorf("invalid issue number: %d", number)
	}

	return &TriggerEvent{
		CommentBody: event.GetComment().GetBody(),
		IssueNumber: number,
		RepoOwner:   event.GetRepo().GetOwner().GetLogin(),
		RepoName:    event.GetRepo().GetName(),
		Commenter:   event.GetComment().GetUser().GetLogin(),
	}, nil
}
