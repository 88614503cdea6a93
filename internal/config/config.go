// Package config loads the process configuration from defaults, an optional
// .env file, environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/mamba-review/internal/logger"
)

// ErrMissingConfig is wrapped by validation errors that list absent required keys.
var ErrMissingConfig = errors.New("missing required configuration")

// Diff backends.
const (
	DiffBackendGit   = "git"
	DiffBackendGoGit = "go-git"
)

// Config holds the application's configuration values.
type Config struct {
	EventPath      string
	Repository     string
	PullRequestURL string
	RepoConfigPath string
	HTTPTimeout    time.Duration
	DryRun         bool

	OpenAI  OpenAIConfig
	GitHub  GitHubConfig
	Diff    DiffConfig
	Server  ServerConfig
	Logging logger.Config
}

// OpenAIConfig configures the chat-completion client.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GitHubConfig configures comment posting. Either Token or the three App
// fields must be set.
type GitHubConfig struct {
	Token          string
	APIURL         string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
}

// UsesApp reports whether GitHub App installation auth is configured.
func (g GitHubConfig) UsesApp() bool {
	return g.AppID > 0 && g.InstallationID > 0 && g.PrivateKeyPath != ""
}

// DiffConfig controls how the diff under review is computed.
type DiffConfig struct {
	Backend string
	Remote  string
	Base    string
	Head    string
	Dir     string
}

// ServerConfig configures the insight receiver.
type ServerConfig struct {
	Port         string
	InsightToken string
	DatabaseURL  string
	MaxWorkers   int
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults and returns the populated Config. It does not
// validate; callers pick ValidateReview or ValidateServer for their command.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	v.SetDefault("GITHUB_API_URL", "https://api.github.com")
	v.SetDefault("OPENAI_MODEL", "gpt-4")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1/")
	v.SetDefault("MAMBA_BASE_BRANCH", "main")
	v.SetDefault("MAMBA_REMOTE", "origin")
	v.SetDefault("MAMBA_HEAD", "HEAD")
	v.SetDefault("MAMBA_DIFF_BACKEND", DiffBackendGit)
	v.SetDefault("MAMBA_REPO_CONFIG", ".mamba.yml")
	v.SetDefault("HTTP_TIMEOUT", 120*time.Second)
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MAX_WORKERS", 5)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stderr")

	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	envFile := v.GetString("MAMBA_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	return &Config{
		EventPath:      v.GetString("GITHUB_EVENT_PATH"),
		Repository:     v.GetString("GITHUB_REPOSITORY"),
		PullRequestURL: v.GetString("MAMBA_PR_URL"),
		RepoConfigPath: v.GetString("MAMBA_REPO_CONFIG"),
		HTTPTimeout:    v.GetDuration("HTTP_TIMEOUT"),
		DryRun:         v.GetBool("MAMBA_DRY_RUN"),
		OpenAI: OpenAIConfig{
			APIKey:  v.GetString("OPENAI_API_KEY"),
			Model:   v.GetString("OPENAI_MODEL"),
			BaseURL: v.GetString("OPENAI_BASE_URL"),
		},
		GitHub: GitHubConfig{
			Token:          v.GetString("GITHUB_TOKEN"),
			APIURL:         v.GetString("GITHUB_API_URL"),
			AppID:          v.GetInt64("GITHUB_APP_ID"),
			InstallationID: v.GetInt64("GITHUB_APP_INSTALLATION_ID"),
			PrivateKeyPath: v.GetString("GITHUB_PRIVATE_KEY_PATH"),
		},
		Diff: DiffConfig{
			Backend: strings.ToLower(v.GetString("MAMBA_DIFF_BACKEND")),
			Remote:  v.GetString("MAMBA_REMOTE"),
			Base:    v.GetString("MAMBA_BASE_BRANCH"),
			Head:    v.GetString("MAMBA_HEAD"),
			Dir:     v.GetString("GITHUB_WORKSPACE"),
		},
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			InsightToken: v.GetString("INSIGHT_API_TOKEN"),
			DatabaseURL:  v.GetString("DATABASE_URL"),
			MaxWorkers:   v.GetInt("MAX_WORKERS"),
		},
		Logging: logger.Config{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
	}, nil
}

// ValidateReview checks every key the review command needs and reports all
// missing ones at once. A dry run needs no GitHub credentials.
func (c *Config) ValidateReview() error {
	var missing []string
	if c.PullRequestURL == "" {
		if c.EventPath == "" {
			missing = append(missing, "GITHUB_EVENT_PATH")
		}
		if c.Repository == "" {
			missing = append(missing, "GITHUB_REPOSITORY")
		}
	}
	if c.OpenAI.APIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.GitHub.Token == "" && !c.GitHub.UsesApp() && !c.DryRun {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}

	if c.Repository != "" {
		owner, repo, ok := strings.Cut(c.Repository, "/")
		if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
			return fmt.Errorf("GITHUB_REPOSITORY must have the form owner/repo, got %q", c.Repository)
		}
	}

	switch c.Diff.Backend {
	case DiffBackendGit, DiffBackendGoGit:
	default:
		return fmt.Errorf("unsupported MAMBA_DIFF_BACKEND %q (want %q or %q)", c.Diff.Backend, DiffBackendGit, DiffBackendGoGit)
	}

	if c.HTTPTimeout <= 0 {
		slog.Warn("non-positive HTTP_TIMEOUT, requests will not time out", "timeout", c.HTTPTimeout)
	}
	return nil
}

// ValidateServer checks the keys needed by the insight receiver.
func (c *Config) ValidateServer() error {
	if c.Server.InsightToken == "" {
		return fmt.Errorf("%w: INSIGHT_API_TOKEN", ErrMissingConfig)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("%w: SERVER_PORT", ErrMissingConfig)
	}
	return nil
}
