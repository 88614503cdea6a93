package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/sevigo/mamba-review/internal/core"
)

// ErrNoChoices is returned when the completion response carries no message.
var ErrNoChoices = errors.New("completion response contained no choices")

// ReviewerConfig configures OpenAIReviewer.
type ReviewerConfig struct {
	APIKey             string
	Model              string
	BaseURL            string
	CustomInstructions []string
	HTTPClient         *http.Client
}

// OpenAIReviewer asks a chat-completion model to review a diff. Each call
// sends exactly one request; failures are never retried.
type OpenAIReviewer struct {
	client       openai.Client
	model        string
	prompts      *PromptManager
	instructions []string
	logger       *slog.Logger
}

func NewOpenAIReviewer(cfg ReviewerConfig, prompts *PromptManager, logger *slog.Logger) (*OpenAIReviewer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if prompts == nil {
		return nil, errors.New("prompt manager is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4"
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &OpenAIReviewer{
		client:       openai.NewClient(opts...),
		model:        cfg.Model,
		prompts:      prompts,
		instructions: cfg.CustomInstructions,
		logger:       logger,
	}, nil
}

// SystemPrompt renders the system message for mode.
func (r *OpenAIReviewer) SystemPrompt(mode core.ReviewMode) (string, error) {
	return r.prompts.Render(ReviewPrompt, ModelProvider(r.model), core.ReviewPromptData{
		Mode:               mode.Label(),
		CustomInstructions: r.instructions,
	})
}

// Review sends the system prompt and the raw diff as two messages and returns
// the content of the first choice.
func (r *OpenAIReviewer) Review(ctx context.Context, mode core.ReviewMode, diff string) (string, error) {
	system, err := r.SystemPrompt(mode)
	if err != nil {
		return "", fmt.Errorf("failed to build system prompt: %w", err)
	}

	r.logger.InfoContext(ctx, "requesting review", "model", r.model, "mode", mode.String(), "diff_bytes", len(diff))
	if strings.TrimSpace(diff) == "" {
		r.logger.WarnContext(ctx, "diff is empty, requesting review anyway")
	}

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(r.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(diff),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("openai returned status %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	r.logger.DebugContext(ctx, "review received", "completion_tokens", resp.Usage.CompletionTokens)
	return resp.Choices[0].Message.Content, nil
}
