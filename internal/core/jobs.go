// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"context"
)

// DiffSource produces the diff under review.
//
//go:generate mockgen -destination=../../mocks/mock_core.go -package=mocks . DiffSource,Reviewer,CommentPublisher,InsightJob
type DiffSource interface {
	// Diff returns the unified diff between the configured base and head, verbatim.
	Diff(ctx context.Context) (string, error)
}

// Reviewer asks a language model to review a diff in the given mode and
// returns the model's reply text.
type Reviewer interface {
	Review(ctx context.Context, mode ReviewMode, diff string) (string, error)
}

// CommentPublisher delivers the final review comment for a trigger event.
type CommentPublisher interface {
	Publish(ctx context.Context, event *TriggerEvent, body string) error
}

// Job is a single review run triggered by a comment.
type Job interface {
	Run(ctx context.Context, event *TriggerEvent) error
}

// InsightDispatcher defines the contract for a system that can accept and queue
// insights for asynchronous processing. It decouples the HTTP receiver from
// the persistence work.
type InsightDispatcher interface {
	// Dispatch queues an insight for processing. It returns an error if the
	// queue is full, providing a mechanism for backpressure.
	Dispatch(ctx context.Context, insight *Insight) error
	// Stop closes the queue and waits for in-flight insights to finish.
	Stop()
}

// InsightJob processes a single received insight.
type InsightJob interface {
	Run(ctx context.Context, insight *Insight) error
}
