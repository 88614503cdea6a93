package github

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/mamba-review/internal/core"
	"github.com/sevigo/mamba-review/mocks"
)

func TestCommentPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	event := &core.TriggerEvent{CommentBody: "/mamba", IssueNumber: 7, RepoOwner: "mamba", RepoName: "apex"}

	client.EXPECT().CreateComment(gomock.Any(), "mamba", "apex", 7, "body").Return(nil)
	assert.NoError(t, NewCommentPublisher(client).Publish(context.Background(), event, "body"))

	boom := errors.New("boom")
	client.EXPECT().CreateComment(gomock.Any(), "mamba", "apex", 7, "body").Return(boom)
	assert.ErrorIs(t, NewCommentPublisher(client).Publish(context.Background(), event, "body"), boom)
}

func TestCommentPublisher_NoRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	err := NewCommentPublisher(client).Publish(context.Background(), &core.TriggerEvent{IssueNumber: 7}, "body")
	assert.Error(t, err)
}
