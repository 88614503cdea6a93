// Package render prints review comments to a terminal instead of posting them.
package render

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/mamba-review/internal/core"
)

// Glamour styles accepted by NewTerminalPublisher.
const (
	StyleAuto  = "auto"
	StyleNoTTY = "notty"
)

// TerminalPublisher implements core.CommentPublisher by rendering the comment
// body as Markdown to out. It is used for --dry-run.
type TerminalPublisher struct {
	out      io.Writer
	renderer *glamour.TermRenderer
	header   lipgloss.Style
}

func NewTerminalPublisher(out io.Writer, style string) (*TerminalPublisher, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != StyleAuto {
		styleOpt = glamour.WithStandardStyle(style)
	}

	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(100))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return &TerminalPublisher{
		out:      out,
		renderer: renderer,
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),
	}, nil
}

func (p *TerminalPublisher) Publish(_ context.Context, event *core.TriggerEvent, body string) error {
	target := fmt.Sprintf("#%d", event.IssueNumber)
	if event.RepoOwner != "" && event.RepoName != "" {
		target = fmt.Sprintf("%s/%s#%d", event.RepoOwner, event.RepoName, event.IssueNumber)
	}

	rendered, err := p.renderer.Render(body)
	if err != nil {
		return fmt.Errorf("failed to render comment: %w", err)
	}

	if _, err := fmt.Fprintln(p.out, p.header.Render("Dry run, comment not posted to "+target)); err != nil {
		return err
	}
	_, err = io.WriteString(p.out, rendered)
	return err
}
