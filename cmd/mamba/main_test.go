package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Mamba", "GIT_AUTHOR_EMAIL=mamba@example.com",
		"GIT_COMMITTER_NAME=Mamba", "GIT_COMMITTER_EMAIL=mamba@example.com",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

// checkout builds a clone whose current branch adds one line to Account.cls.
func checkout(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	remote := filepath.Join(t.TempDir(), "remote.git")
	git(t, t.TempDir(), "init", "--bare", "--initial-branch=main", remote)

	work := filepath.Join(t.TempDir(), "work")
	git(t, filepath.Dir(work), "clone", remote, work)
	git(t, work, "symbolic-ref", "HEAD", "refs/heads/main")
	require.NoError(t, os.WriteFile(filepath.Join(work, "Account.cls"), []byte("public class Account {}\n"), 0o600))
	git(t, work, "add", ".")
	git(t, work, "commit", "-m", "initial")
	git(t, work, "push", "origin", "main")

	git(t, work, "checkout", "-b", "feature")
	require.NoError(t, os.WriteFile(filepath.Join(work, "Account.cls"), []byte("public class Account {}\n// insert\n"), 0o600))
	git(t, work, "commit", "-am", "feature")
	return work
}

type fakeAPIs struct {
	openAI   *httptest.Server
	github   *httptest.Server
	mu       sync.Mutex
	messages []map[string]string
	comments []string
}

func newFakeAPIs(t *testing.T, openAIStatus, githubStatus int) *fakeAPIs {
	t.Helper()
	f := &fakeAPIs{}

	f.openAI = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []map[string]string `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.messages = req.Messages
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(openAIStatus)
		if openAIStatus != http.StatusOK {
			_, _ = io.WriteString(w, `{"error":{"message":"upstream failure"}}`)
			return
		}
		_, _ = io.WriteString(w, `{"id":"c","object":"chat.completion","created":1,"model":"gpt-4","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"OK"}}]}`)
	}))
	t.Cleanup(f.openAI.Close)

	f.github = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if githubStatus != http.StatusCreated {
			w.WriteHeader(githubStatus)
			_, _ = io.WriteString(w, `{"message":"forbidden"}`)
			return
		}
		f.mu.Lock()
		f.comments = append(f.comments, r.URL.Path+"|"+body["body"])
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":1}`)
	}))
	t.Cleanup(f.github.Close)
	return f
}

func setupReviewEnv(t *testing.T, apis *fakeAPIs, comment string) {
	t.Helper()
	work := checkout(t)
	t.Chdir(t.TempDir())

	payload, err := json.Marshal(map[string]any{
		"issue":   map[string]any{"number": 42},
		"comment": map[string]any{"body": comment},
	})
	require.NoError(t, err)
	eventPath := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(eventPath, payload, 0o600))

	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("GITHUB_EVENT_PATH", eventPath)
	t.Setenv("GITHUB_REPOSITORY", "mamba/apex")
	t.Setenv("GITHUB_WORKSPACE", work)
	t.Setenv("GITHUB_TOKEN", "ghs-test")
	t.Setenv("GITHUB_API_URL", apis.github.URL)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", apis.openAI.URL+"/")
}

func TestReview_StrictCommentPosted(t *testing.T) {
	apis := newFakeAPIs(t, http.StatusOK, http.StatusCreated)
	setupReviewEnv(t, apis, "/mamba strict please review")

	var stdout, stderr bytes.Buffer
	code := run([]string{"review"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	require.Len(t, apis.messages, 2)
	assert.Equal(t, "You are Apex MambaDev in Mamba Strict Mode. Review the following Apex PR diff using the Mamba Protocol.", apis.messages[0]["content"])
	assert.Contains(t, apis.messages[1]["content"], "+// insert")

	require.Len(t, apis.comments, 1)
	assert.Equal(t, "/repos/mamba/apex/issues/42/comments|🧠 Mamba Review (Mamba Strict Mode):\n\nOK", apis.comments[0])
}

func TestReview_ModelFailureExitsOneWithoutComment(t *testing.T) {
	apis := newFakeAPIs(t, http.StatusInternalServerError, http.StatusCreated)
	setupReviewEnv(t, apis, "/mamba")

	var stdout, stderr bytes.Buffer
	code := run([]string{"review"}, &stdout, &stderr)

	assert.Equal(t, exitCaught, code)
	assert.Contains(t, stderr.String(), "Mamba GPT error")
	assert.Empty(t, apis.comments)
}

func TestReview_CommentFailureExitsOne(t *testing.T) {
	apis := newFakeAPIs(t, http.StatusOK, http.StatusForbidden)
	setupReviewEnv(t, apis, "/mamba")

	var stdout, stderr bytes.Buffer
	code := run([]string{"review"}, &stdout, &stderr)

	assert.Equal(t, exitCaught, code)
	assert.Contains(t, stderr.String(), "Mamba GPT error")
}

func TestReview_DryRunRendersToStdout(t *testing.T) {
	apis := newFakeAPIs(t, http.StatusOK, http.StatusCreated)
	setupReviewEnv(t, apis, "/mamba")
	t.Setenv("GITHUB_TOKEN", "")

	var stdout, stderr bytes.Buffer
	code := run([]string{"review", "--dry-run", "--render-style", "notty"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	assert.Contains(t, stdout.String(), "Mamba Review Mode")
	assert.Empty(t, apis.comments)
}

func TestReview_SetupFailuresExitTwo(t *testing.T) {
	t.Run("missing configuration", func(t *testing.T) {
		t.Chdir(t.TempDir())
		for _, key := range []string{"GITHUB_EVENT_PATH", "GITHUB_REPOSITORY", "OPENAI_API_KEY", "GITHUB_TOKEN", "MAMBA_PR_URL", "GITHUB_ACTIONS"} {
			t.Setenv(key, "")
		}

		var stdout, stderr bytes.Buffer
		assert.Equal(t, exitSetup, run([]string{"review"}, &stdout, &stderr))
		for _, key := range []string{"GITHUB_EVENT_PATH", "OPENAI_API_KEY", "GITHUB_TOKEN"} {
			assert.Contains(t, stderr.String(), key)
		}
	})

	t.Run("event without comment body", func(t *testing.T) {
		apis := newFakeAPIs(t, http.StatusOK, http.StatusCreated)
		setupReviewEnv(t, apis, "")
		eventPath := filepath.Join(t.TempDir(), "event.json")
		require.NoError(t, os.WriteFile(eventPath, []byte(`{"issue":{"number":1}}`), 0o600))
		t.Setenv("GITHUB_EVENT_PATH", eventPath)

		var stdout, stderr bytes.Buffer
		assert.Equal(t, exitSetup, run([]string{"review"}, &stdout, &stderr))
		assert.Nil(t, apis.messages)
	})

	t.Run("base branch missing", func(t *testing.T) {
		apis := newFakeAPIs(t, http.StatusOK, http.StatusCreated)
		setupReviewEnv(t, apis, "/mamba")

		var stdout, stderr bytes.Buffer
		assert.Equal(t, exitSetup, run([]string{"review", "--base", "release"}, &stdout, &stderr))
		assert.Nil(t, apis.messages)
		assert.Empty(t, apis.comments)
	})
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, exitOK, run([]string{"version"}, &stdout, &stderr))
	assert.True(t, strings.HasPrefix(stdout.String(), "mamba dev"))
}
