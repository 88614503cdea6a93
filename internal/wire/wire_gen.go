// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"log/slog"

	"github.com/sevigo/mamba-review/internal/app"
	"github.com/sevigo/mamba-review/internal/config"
	"github.com/sevigo/mamba-review/internal/jobs"
	"github.com/sevigo/mamba-review/internal/llm"
	"github.com/sevigo/mamba-review/internal/server"
)

// InitializeApp wires the insight receiver.
func InitializeApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.App, func(), error) {
	store, cleanup, err := provideStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	insightJob := jobs.NewInsightJob(store, logger)
	dispatcher := provideDispatcher(insightJob, cfg, logger)
	serverServer := server.NewServer(cfg, dispatcher, store, logger)
	appApp := app.NewApp(cfg, serverServer, dispatcher, logger)
	return appApp, func() {
		cleanup()
	}, nil
}

// InitializeReviewJob wires a single review run.
func InitializeReviewJob(ctx context.Context, cfg *config.Config, opts ReviewOptions, logger *slog.Logger) (*jobs.ReviewJob, error) {
	diffSource, err := provideDiffSource(cfg, logger)
	if err != nil {
		return nil, err
	}
	promptManager, err := llm.NewPromptManager()
	if err != nil {
		return nil, err
	}
	reviewer, err := provideReviewer(cfg, promptManager, logger)
	if err != nil {
		return nil, err
	}
	publisher, err := providePublisher(ctx, cfg, opts, logger)
	if err != nil {
		return nil, err
	}
	reviewJob := jobs.NewReviewJob(diffSource, reviewer, publisher, logger)
	return reviewJob, nil
}
