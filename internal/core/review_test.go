package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeFromComment(t *testing.T) {
	tests := []struct {
		name string
		body string
		want ReviewMode
	}{
		{name: "exact trigger", body: "/mamba strict", want: Strict},
		{name: "trigger with trailing text", body: "/mamba strict please review", want: Strict},
		{name: "trigger mid sentence", body: "hey bot, /mamba strict now", want: Strict},
		{name: "plain trigger", body: "/mamba", want: Standard},
		{name: "upper case is not strict", body: "/MAMBA STRICT", want: Standard},
		{name: "mixed case is not strict", body: "/Mamba strict", want: Standard},
		{name: "missing slash", body: "mamba strict", want: Standard},
		{name: "double space", body: "/mamba  strict", want: Standard},
		{name: "empty body", body: "", want: Standard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ModeFromComment(tt.body))
		})
	}
}

func TestReviewMode_Label(t *testing.T) {
	assert.Equal(t, "Mamba Strict Mode", Strict.Label())
	assert.Equal(t, "Mamba Review Mode", Standard.Label())
}

func TestFormatComment(t *testing.T) {
	tests := []struct {
		name  string
		mode  ReviewMode
		reply string
		want  string
	}{
		{
			name:  "standard",
			mode:  Standard,
			reply: "Looks good",
			want:  "🧠 Mamba Review (Mamba Review Mode):\n\nLooks good",
		},
		{
			name:  "strict",
			mode:  Strict,
			reply: "OK",
			want:  "🧠 Mamba Review (Mamba Strict Mode):\n\nOK",
		},
		{
			name:  "reply kept verbatim",
			mode:  Standard,
			reply: "  line 1\n\nline 2  ",
			want:  "🧠 Mamba Review (Mamba Review Mode):\n\n  line 1\n\nline 2  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatComment(tt.mode, tt.reply))
		})
	}
}
