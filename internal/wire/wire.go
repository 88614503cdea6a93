//go:build wireinject
// +build wireinject

package wire

import (
	"context"
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/mamba-review/internal/app"
	"github.com/sevigo/mamba-review/internal/config"
	"github.com/sevigo/mamba-review/internal/jobs"
	"github.com/sevigo/mamba-review/internal/llm"
	"github.com/sevigo/mamba-review/internal/server"
)

func InitializeApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.App, func(), error) {
	wire.Build(
		app.NewApp,
		server.NewServer,
		jobs.NewInsightJob,
		provideStore,
		provideDispatcher,
	)
	return &app.App{}, nil, nil
}

func InitializeReviewJob(ctx context.Context, cfg *config.Config, opts ReviewOptions, logger *slog.Logger) (*jobs.ReviewJob, error) {
	wire.Build(
		jobs.NewReviewJob,
		llm.NewPromptManager,
		provideDiffSource,
		provideReviewer,
		providePublisher,
	)
	return &jobs.ReviewJob{}, nil
}
