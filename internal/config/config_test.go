package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so a developer's .env file
// cannot leak into the result.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{
		"GITHUB_EVENT_PATH", "GITHUB_REPOSITORY", "OPENAI_API_KEY", "GITHUB_TOKEN",
		"GITHUB_APP_ID", "GITHUB_APP_INSTALLATION_ID", "GITHUB_PRIVATE_KEY_PATH",
		"OPENAI_MODEL", "MAMBA_DIFF_BACKEND", "MAMBA_ENV_FILE", "MAMBA_PR_URL",
		"INSIGHT_API_TOKEN", "HTTP_TIMEOUT", "MAMBA_DRY_RUN", "GITHUB_WORKSPACE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "gpt-4", cfg.OpenAI.Model)
	assert.Equal(t, "https://api.openai.com/v1/", cfg.OpenAI.BaseURL)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.APIURL)
	assert.Equal(t, "main", cfg.Diff.Base)
	assert.Equal(t, "origin", cfg.Diff.Remote)
	assert.Equal(t, "HEAD", cfg.Diff.Head)
	assert.Equal(t, DiffBackendGit, cfg.Diff.Backend)
	assert.Equal(t, 120*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.MaxWorkers)
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestLoadConfig_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_EVENT_PATH", "/tmp/event.json")
	t.Setenv("GITHUB_REPOSITORY", "mamba/apex")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GITHUB_TOKEN", "ghs-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("HTTP_TIMEOUT", "30s")

	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "/tmp/event.json", cfg.EventPath)
	assert.Equal(t, "mamba/apex", cfg.Repository)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "ghs-test", cfg.GitHub.Token)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.NoError(t, cfg.ValidateReview())
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	dir := isolate(t)
	content := "OPENAI_API_KEY=sk-from-file\nGITHUB_TOKEN=ghs-from-file\nOPENAI_MODEL=gpt-4-turbo\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "sk-from-file", cfg.OpenAI.APIKey)
	assert.Equal(t, "ghs-from-file", cfg.GitHub.Token)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model, "environment must win over the .env file")
}

func TestConfig_ValidateReview(t *testing.T) {
	valid := func() Config {
		return Config{
			EventPath:  "/tmp/event.json",
			Repository: "mamba/apex",
			OpenAI:     OpenAIConfig{APIKey: "sk"},
			GitHub:     GitHubConfig{Token: "ghs"},
			Diff:       DiffConfig{Backend: DiffBackendGit},
		}
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		wantMissing []string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:        "everything missing",
			mutate:      func(c *Config) { *c = Config{Diff: DiffConfig{Backend: DiffBackendGit}} },
			wantErr:     true,
			wantMissing: []string{"GITHUB_EVENT_PATH", "GITHUB_REPOSITORY", "OPENAI_API_KEY", "GITHUB_TOKEN"},
		},
		{
			name:        "missing api key",
			mutate:      func(c *Config) { c.OpenAI.APIKey = "" },
			wantErr:     true,
			wantMissing: []string{"OPENAI_API_KEY"},
		},
		{
			name: "app auth replaces token",
			mutate: func(c *Config) {
				c.GitHub = GitHubConfig{AppID: 1, InstallationID: 2, PrivateKeyPath: "key.pem"}
			},
		},
		{
			name: "pull request url replaces event and repository",
			mutate: func(c *Config) {
				c.EventPath, c.Repository = "", ""
				c.PullRequestURL = "https://github.com/mamba/apex/pull/1"
			},
		},
		{
			name:   "dry run needs no token",
			mutate: func(c *Config) { c.GitHub.Token, c.DryRun = "", true },
		},
		{
			name:    "malformed repository",
			mutate:  func(c *Config) { c.Repository = "mamba" },
			wantErr: true,
		},
		{
			name:    "nested repository",
			mutate:  func(c *Config) { c.Repository = "mamba/apex/extra" },
			wantErr: true,
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Diff.Backend = "svn" },
			wantErr: true,
		},
		{
			name:   "go-git backend",
			mutate: func(c *Config) { c.Diff.Backend = DiffBackendGoGit },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.ValidateReview()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if len(tt.wantMissing) > 0 {
				assert.ErrorIs(t, err, ErrMissingConfig)
				for _, key := range tt.wantMissing {
					assert.Contains(t, err.Error(), key)
				}
			}
		})
	}
}

func TestConfig_ValidateServer(t *testing.T) {
	cfg := Config{Server: ServerConfig{Port: "8080"}}
	assert.ErrorIs(t, cfg.ValidateServer(), ErrMissingConfig)

	cfg.Server.InsightToken = "secret"
	assert.NoError(t, cfg.ValidateServer())
}

func TestLoadRepoConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadRepoConfig(filepath.Join(dir, "absent.yml"))
		assert.ErrorIs(t, err, ErrConfigNotFound)
		require.NotNil(t, cfg)
		assert.Empty(t, cfg.CustomInstructions)
	})

	t.Run("custom instructions", func(t *testing.T) {
		path := filepath.Join(dir, ".mamba.yml")
		require.NoError(t, os.WriteFile(path, []byte("custom_instructions:\n  - Flag SOQL in loops\n  - Check sharing rules\n"), 0o600))

		cfg, err := LoadRepoConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Flag SOQL in loops", "Check sharing rules"}, cfg.CustomInstructions)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yml")
		require.NoError(t, os.WriteFile(path, []byte("custom_instructions: [unterminated"), 0o600))

		_, err := LoadRepoConfig(path)
		assert.ErrorIs(t, err, ErrConfigParsing)
	})
}
