// Package jobs holds the review run and the insight worker pool.
package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sevigo/mamba-review/internal/core"
	"github.com/sevigo/mamba-review/internal/metrics"
)

// ReviewJob runs one review: diff, model call, comment. The stages run
// strictly in order and the first failure ends the run.
type ReviewJob struct {
	diffs     core.DiffSource
	reviewer  core.Reviewer
	publisher core.CommentPublisher
	logger    *slog.Logger
}

// NewReviewJob creates a ReviewJob. All dependencies are required.
func NewReviewJob(diffs core.DiffSource, reviewer core.Reviewer, publisher core.CommentPublisher, logger *slog.Logger) *ReviewJob {
	if diffs == nil {
		panic("diff source cannot be nil")
	}
	if reviewer == nil {
		panic("reviewer cannot be nil")
	}
	if publisher == nil {
		panic("comment publisher cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ReviewJob{diffs: diffs, reviewer: reviewer, publisher: publisher, logger: logger}
}

// Run executes the review for event. Every returned error is a *StageError.
func (j *ReviewJob) Run(ctx context.Context, event *core.TriggerEvent) error {
	if event == nil {
		return &StageError{Stage: StageEvent, Err: errors.New("event cannot be nil")}
	}

	mode := core.ModeFromComment(event.CommentBody)
	log := j.logger.With("issue", event.IssueNumber, "mode", mode.String())
	log.InfoContext(ctx, "starting review", "repo", event.RepoOwner+"/"+event.RepoName, "commenter", event.Commenter)

	diff, err := j.diffs.Diff(ctx)
	if err != nil {
		metrics.ReviewsTotal.WithLabelValues(mode.String(), string(StageDiff)).Inc()
		return &StageError{Stage: StageDiff, Err: err}
	}

	reply, err := j.reviewer.Review(ctx, mode, diff)
	if err != nil {
		metrics.ReviewsTotal.WithLabelValues(mode.String(), string(StageReview)).Inc()
		return &StageError{Stage: StageReview, Err: err}
	}

	if err := j.publisher.Publish(ctx, event, core.FormatComment(mode, reply)); err != nil {
		metrics.ReviewsTotal.WithLabelValues(mode.String(), string(StageComment)).Inc()
		return &StageError{Stage: StageComment, Err: err}
	}

	metrics.ReviewsTotal.WithLabelValues(mode.String(), "success").Inc()
	log.InfoContext(ctx, "review completed")
	return nil
}
