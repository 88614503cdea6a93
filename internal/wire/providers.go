package wire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sevigo/mamba-review/internal/config"
	"github.com/sevigo/mamba-review/internal/core"
	"github.com/sevigo/mamba-review/internal/db"
	"github.com/sevigo/mamba-review/internal/github"
	"github.com/sevigo/mamba-review/internal/gitutil"
	"github.com/sevigo/mamba-review/internal/jobs"
	"github.com/sevigo/mamba-review/internal/llm"
	"github.com/sevigo/mamba-review/internal/render"
	"github.com/sevigo/mamba-review/internal/storage"
)

// ReviewOptions carries per-invocation choices of the review command.
type ReviewOptions struct {
	DryRun      bool
	Out         io.Writer
	RenderStyle string
}

func provideStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Store, func(), error) {
	if cfg.Server.DatabaseURL == "" {
		logger.Info("DATABASE_URL not set, keeping insights in memory")
		return storage.NewMemoryStore(), func() {}, nil
	}

	conn, cleanup, err := db.Connect(ctx, cfg.Server.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewStore(conn.DB), cleanup, nil
}

func provideDispatcher(job core.InsightJob, cfg *config.Config, logger *slog.Logger) core.InsightDispatcher {
	return jobs.NewDispatcher(job, cfg.Server.MaxWorkers, logger)
}

func provideDiffSource(cfg *config.Config, logger *slog.Logger) (core.DiffSource, error) {
	return gitutil.NewDiffer(cfg.Diff, cfg.GitHub.Token, logger)
}

// provideReviewer builds the OpenAI reviewer with any custom instructions
// from the repository's .mamba.yml. A missing file is not an error.
func provideReviewer(cfg *config.Config, prompts *llm.PromptManager, logger *slog.Logger) (core.Reviewer, error) {
	path := cfg.RepoConfigPath
	if path != "" && !filepath.IsAbs(path) && cfg.Diff.Dir != "" {
		path = filepath.Join(cfg.Diff.Dir, path)
	}

	repoCfg := core.DefaultRepoConfig()
	if path != "" {
		loaded, err := config.LoadRepoConfig(path)
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
			logger.Debug("no repository config found", "path", path)
		case err != nil:
			return nil, fmt.Errorf("failed to load repository config: %w", err)
		default:
			logger.Info("loaded repository config", "path", path, "instructions", len(loaded.CustomInstructions))
			repoCfg = loaded
		}
	}

	return llm.NewOpenAIReviewer(llm.ReviewerConfig{
		APIKey:             cfg.OpenAI.APIKey,
		Model:              cfg.OpenAI.Model,
		BaseURL:            cfg.OpenAI.BaseURL,
		CustomInstructions: repoCfg.CustomInstructions,
		HTTPClient:         &http.Client{Timeout: cfg.HTTPTimeout},
	}, prompts, logger)
}

func provideGitHubClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (github.Client, error) {
	if cfg.GitHub.UsesApp() {
		return github.NewInstallationClient(github.AppCredentials{
			AppID:          cfg.GitHub.AppID,
			InstallationID: cfg.GitHub.InstallationID,
			PrivateKeyPath: cfg.GitHub.PrivateKeyPath,
		}, cfg.GitHub.APIURL, cfg.HTTPTimeout, logger)
	}
	return github.NewPATClient(ctx, cfg.GitHub.Token, cfg.GitHub.APIURL, cfg.HTTPTimeout, logger)
}

func providePublisher(ctx context.Context, cfg *config.Config, opts ReviewOptions, logger *slog.Logger) (core.CommentPublisher, error) {
	if opts.DryRun {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		return render.NewTerminalPublisher(out, opts.RenderStyle)
	}

	client, err := provideGitHubClient(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return github.NewCommentPublisher(client), nil
}
