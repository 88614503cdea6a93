package gitutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/sevigo/mamba-review/internal/config"
)

// GoGitDiffer computes the same three-dot diff as CLIDiffer without a git
// binary, using go-git to fetch the base branch and walk to the merge base.
type GoGitDiffer struct {
	Dir    string
	Remote string
	Base   string
	Head   string
	Token  string
	Logger *slog.Logger
}

// NewGoGitDiffer returns a GoGitDiffer with defaults applied to empty fields.
func NewGoGitDiffer(cfg config.DiffConfig, token string, logger *slog.Logger) *GoGitDiffer {
	cfg = withDefaults(cfg)
	if logger == nil {
		logger = slog.Default()
	}
	return &GoGitDiffer{Dir: cfg.Dir, Remote: cfg.Remote, Base: cfg.Base, Head: cfg.Head, Token: token, Logger: logger}
}

// Diff fetches <base> into refs/remotes/<remote>/<base> and returns the patch
// between the merge base of that ref and Head.
func (d *GoGitDiffer) Diff(ctx context.Context) (string, error) {
	repo, err := git.PlainOpenWithOptions(d.Dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", &DiffError{Step: "open", Err: err}
	}

	if err := d.fetch(ctx, repo); err != nil {
		return "", err
	}

	baseRef, err := repo.Reference(plumbing.NewRemoteReferenceName(d.Remote, d.Base), true)
	if err != nil {
		return "", &DiffError{Step: "rev-parse", Err: fmt.Errorf("resolving %s/%s: %w", d.Remote, d.Base, err)}
	}
	headHash, err := repo.ResolveRevision(plumbing.Revision(d.Head))
	if err != nil {
		return "", &DiffError{Step: "rev-parse", Err: fmt.Errorf("resolving %s: %w", d.Head, err)}
	}

	baseCommit, err := repo.CommitObject(baseRef.Hash())
	if err != nil {
		return "", &DiffError{Step: "merge-base", Err: err}
	}
	headCommit, err := repo.CommitObject(*headHash)
	if err != nil {
		return "", &DiffError{Step: "merge-base", Err: err}
	}

	mergeBase, err := d.mergeBase(baseCommit, headCommit)
	if err != nil {
		return "", err
	}

	patch, err := mergeBase.PatchContext(ctx, headCommit)
	if err != nil {
		return "", &DiffError{Step: "diff", Err: err}
	}

	out := patch.String()
	d.Logger.DebugContext(ctx, "diff computed", "merge_base", mergeBase.Hash.String(), "bytes", len(out))
	return out, nil
}

func (d *GoGitDiffer) fetch(ctx context.Context, repo *git.Repository) error {
	remote, err := repo.Remote(d.Remote)
	if err != nil {
		return &DiffError{Step: "fetch", Err: fmt.Errorf("remote %q: %w", d.Remote, err)}
	}

	refSpec := gitconfig.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", d.Base, d.Remote, d.Base))
	d.Logger.InfoContext(ctx, "fetching base branch", "remote", d.Remote, "branch", d.Base)

	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: d.Remote,
		RefSpecs:   []gitconfig.RefSpec{refSpec},
		Auth:       d.auth(remote.Config().URLs),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return &DiffError{Step: "fetch", Err: err}
	}
	return nil
}

// auth returns token credentials for HTTPS remotes and nil otherwise.
func (d *GoGitDiffer) auth(urls []string) transport.AuthMethod {
	if d.Token == "" || len(urls) == 0 {
		return nil
	}
	if !strings.HasPrefix(urls[0], "https://") && !strings.HasPrefix(urls[0], "http://") {
		return nil
	}
	return &githttp.BasicAuth{Username: "x-access-token", Password: d.Token}
}

func (d *GoGitDiffer) mergeBase(base, head *object.Commit) (*object.Commit, error) {
	bases, err := base.MergeBase(head)
	if err != nil {
		return nil, &DiffError{Step: "merge-base", Err: err}
	}
	if len(bases) == 0 {
		return nil, &DiffError{Step: "merge-base", Err: fmt.Errorf("%s/%s and %s share no history", d.Remote, d.Base, d.Head)}
	}
	return bases[0], nil
}
