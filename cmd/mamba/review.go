package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sevigo/mamba-review/internal/config"
	"github.com/sevigo/mamba-review/internal/core"
	"github.com/sevigo/mamba-review/internal/github"
	"github.com/sevigo/mamba-review/internal/gitutil"
	"github.com/sevigo/mamba-review/internal/jobs"
	"github.com/sevigo/mamba-review/internal/render"
	"github.com/sevigo/mamba-review/internal/wire"
)

func (c *cli) newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review the current branch and comment on the pull request",
		Long: `Review the diff between the checked-out branch and the base branch.

The trigger comment is read from the issue_comment payload at
$GITHUB_EVENT_PATH; a comment containing "/mamba strict" selects strict mode.
Outside GitHub Actions, --pr-url and --comment stand in for the payload.

Exit status is 1 when the model request or the comment post fails and 2 when
configuration, the event payload or the diff could not be loaded.`,
		Example: `  mamba review
  mamba review --dry-run --pr-url https://github.com/acme/apex/pull/12 --comment "/mamba strict"`,
		Args: cobra.NoArgs,
		RunE: c.runReview,
	}

	flags := cmd.Flags()
	flags.Bool("dry-run", false, "Render the comment to stdout instead of posting it")
	flags.String("event-path", "", "Path of the issue_comment event payload")
	flags.String("repository", "", "Repository in owner/repo form")
	flags.String("pr-url", "", "Pull request URL, used instead of an event payload")
	flags.String("comment", "", "Trigger comment text when --pr-url is used")
	flags.String("base", "", "Base branch to diff against (default main)")
	flags.String("remote", "", "Remote the base branch is fetched from (default origin)")
	flags.String("model", "", "Chat-completion model (default gpt-4)")
	flags.String("diff-backend", "", "Diff backend: git or go-git")
	flags.String("render-style", render.StyleAuto, "Glamour style for --dry-run output")

	c.bind(flags, "dry-run", "MAMBA_DRY_RUN")
	c.bind(flags, "event-path", "GITHUB_EVENT_PATH")
	c.bind(flags, "repository", "GITHUB_REPOSITORY")
	c.bind(flags, "pr-url", "MAMBA_PR_URL")
	c.bind(flags, "comment", "MAMBA_COMMENT")
	c.bind(flags, "base", "MAMBA_BASE_BRANCH")
	c.bind(flags, "remote", "MAMBA_REMOTE")
	c.bind(flags, "model", "OPENAI_MODEL")
	c.bind(flags, "diff-backend", "MAMBA_DIFF_BACKEND")
	c.bind(flags, "render-style", "MAMBA_RENDER_STYLE")
	return cmd
}

func (c *cli) runReview(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateReview(); err != nil {
		return err
	}

	event, err := c.triggerEvent(cfg)
	if err != nil {
		return &jobs.StageError{Stage: jobs.StageEvent, Err: err}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	job, err := wire.InitializeReviewJob(ctx, cfg, wire.ReviewOptions{
		DryRun:      cfg.DryRun,
		Out:         c.stdout,
		RenderStyle: c.v.GetString("MAMBA_RENDER_STYLE"),
	}, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize review: %w", err)
	}

	if err := job.Run(ctx, event); err != nil {
		return err
	}

	if !cfg.DryRun {
		successColor.Fprintf(c.stderr, "Mamba review posted to %s/%s#%d\n", event.RepoOwner, event.RepoName, event.IssueNumber)
	}
	return nil
}

// triggerEvent loads the event from the payload file, or synthesizes one from
// --pr-url and --comment. GITHUB_REPOSITORY names the repository to comment on.
func (c *cli) triggerEvent(cfg *config.Config) (*core.TriggerEvent, error) {
	if cfg.PullRequestURL != "" {
		ref, err := gitutil.ParsePullRequestURL(cfg.PullRequestURL)
		if err != nil {
			return nil, err
		}
		dimColor.Fprintf(c.stderr, "Reviewing %s/%s#%d\n", ref.Owner, ref.Repo, ref.Number)
		return &core.TriggerEvent{
			CommentBody: c.v.GetString("MAMBA_COMMENT"),
			IssueNumber: ref.Number,
			RepoOwner:   ref.Owner,
			RepoName:    ref.Repo,
		}, nil
	}

	event, err := github.LoadTriggerEvent(cfg.EventPath)
	if err != nil {
		return nil, err
	}
	owner, repo, err := gitutil.ParseRepository(cfg.Repository)
	if err != nil {
		return nil, err
	}
	event.RepoOwner, event.RepoName = owner, repo
	return event, nil
}
