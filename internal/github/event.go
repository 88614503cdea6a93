package github

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/mamba-review/internal/core"
)

// LoadTriggerEvent reads the issue_comment payload that GitHub Actions writes
// to GITHUB_EVENT_PATH.
func LoadTriggerEvent(path string) (*core.TriggerEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}
	return ParseTriggerEvent(data)
}

// ParseTriggerEvent decodes an issue_comment payload.
func ParseTriggerEvent(data []byte) (*core.TriggerEvent, error) {
	var event github.IssueCommentEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event payload: %w", err)
	}
	return core.EventFromIssueComment(&event)
}
