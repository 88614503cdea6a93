// Package gitutil computes the diff under review from a local Git checkout.
package gitutil

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/sevigo/mamba-review/internal/config"
	"github.com/sevigo/mamba-review/internal/core"
)

// DiffError reports a failed step while computing the diff.
type DiffError struct {
	Step   string
	Output string
	Err    error
}

func (e *DiffError) Error() string {
	if out := strings.TrimSpace(e.Output); out != "" {
		return fmt.Sprintf("git %s failed: %s: %v", e.Step, out, e.Err)
	}
	return fmt.Sprintf("git %s failed: %v", e.Step, e.Err)
}

func (e *DiffError) Unwrap() error { return e.Err }

// CLIDiffer shells out to the git binary. It fetches the base branch from the
// remote and returns the three-dot diff from the merge base to Head.
type CLIDiffer struct {
	Dir    string
	Remote string
	Base   string
	Head   string
	Logger *slog.Logger
}

// NewCLIDiffer returns a CLIDiffer with defaults applied to empty fields.
func NewCLIDiffer(cfg config.DiffConfig, logger *slog.Logger) *CLIDiffer {
	cfg = withDefaults(cfg)
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIDiffer{Dir: cfg.Dir, Remote: cfg.Remote, Base: cfg.Base, Head: cfg.Head, Logger: logger}
}

// Diff runs `git fetch <remote> <base>` followed by
// `git diff <remote>/<base>...<head>` and returns stdout verbatim.
func (d *CLIDiffer) Diff(ctx context.Context) (string, error) {
	d.Logger.InfoContext(ctx, "fetching base branch", "remote", d.Remote, "branch", d.Base)
	if _, err := d.git(ctx, "fetch", d.Remote, d.Base); err != nil {
		return "", err
	}

	revRange := fmt.Sprintf("%s/%s...%s", d.Remote, d.Base, d.Head)
	d.Logger.InfoContext(ctx, "computing diff", "range", revRange)
	out, err := d.git(ctx, "diff", revRange)
	if err != nil {
		return "", err
	}
	d.Logger.DebugContext(ctx, "diff computed", "bytes", len(out))
	return out, nil
}

func (d *CLIDiffer) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = d.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &DiffError{Step: args[0], Output: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}

// NewDiffer picks the diff backend named in cfg. token is only used by the
// go-git backend to authenticate fetches over HTTPS.
func NewDiffer(cfg config.DiffConfig, token string, logger *slog.Logger) (core.DiffSource, error) {
	switch cfg.Backend {
	case "", config.DiffBackendGit:
		return NewCLIDiffer(cfg, logger), nil
	case config.DiffBackendGoGit:
		return NewGoGitDiffer(cfg, token, logger), nil
	default:
		return nil, fmt.Errorf("unsupported diff backend: %s", cfg.Backend)
	}
}

func withDefaults(cfg config.DiffConfig) config.DiffConfig {
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	if cfg.Base == "" {
		cfg.Base = "main"
	}
	if cfg.Head == "" {
		cfg.Head = "HEAD"
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	return cfg
}
