package core

import (
	"fmt"
	"strings"
)

// StrictTrigger is the comment fragment that switches a review into strict mode.
const StrictTrigger = "/mamba strict"

// ReviewMode selects the system prompt used for a review.
type ReviewMode int

const (
	// Standard is the default review mode.
	Standard ReviewMode = iota
	// Strict is selected when the trigger comment contains StrictTrigger.
	Strict
)

// ModeFromComment returns Strict when body contains StrictTrigger verbatim and
// Standard otherwise. Matching is case-sensitive and the body is not trimmed.
func ModeFromComment(body string) ReviewMode {
	if strings.Contains(body, StrictTrigger) {
		return Strict
	}
	return Standard
}

// Label is the human-readable mode name used in prompts and comments.
func (m ReviewMode) Label() string {
	if m == Strict {
		return "Mamba Strict Mode"
	}
	return "Mamba Review Mode"
}

func (m ReviewMode) String() string {
	if m == Strict {
		return "strict"
	}
	return "standard"
}

// FormatComment builds the body of the comment posted back to the pull request.
func FormatComment(mode ReviewMode, reply string) string {
	return fmt.Sprintf("🧠 Mamba Review (%s):\n\n%s", mode.Label(), reply)
}

// ReviewPromptData is a type-safe struct for rendering review system prompts.
type ReviewPromptData struct {
	Mode               string
	CustomInstructions []string
}
