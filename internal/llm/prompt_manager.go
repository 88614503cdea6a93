package llm

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed prompts/*.prompt
var promptFiles embed.FS

// ModelProvider selects a model-specific variant of a prompt. Variants live in
// files named <key>_<provider>.prompt; "default" is the fallback.
type ModelProvider string
type PromptKey string

const (
	DefaultProvider ModelProvider = "default"
	ReviewPrompt    PromptKey     = "review"
)

// PromptManager holds the parsed prompt templates embedded in the binary.
type PromptManager struct {
	templates map[PromptKey]map[ModelProvider]*template.Template
}

func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{templates: make(map[PromptKey]map[ModelProvider]*template.Template)}

	entries, err := promptFiles.ReadDir("prompts")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded prompts: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, provider, err := splitPromptName(entry.Name())
		if err != nil {
			return nil, err
		}
		content, err := promptFiles.ReadFile("prompts/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt %s: %w", entry.Name(), err)
		}
		if err := pm.register(key, provider, string(content)); err != nil {
			return nil, fmt.Errorf("failed to register prompt %s: %w", entry.Name(), err)
		}
	}
	return pm, nil
}

func splitPromptName(name string) (PromptKey, ModelProvider, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	i := strings.LastIndex(base, "_")
	if i <= 0 || i == len(base)-1 {
		return "", "", fmt.Errorf("invalid prompt filename %s: want <key>_<provider>.prompt", name)
	}
	return PromptKey(base[:i]), ModelProvider(base[i+1:]), nil
}

func (pm *PromptManager) register(key PromptKey, provider ModelProvider, content string) error {
	tmpl, err := template.New(string(key) + "_" + string(provider)).Option("missingkey=error").Parse(content)
	if err != nil {
		return fmt.Errorf("could not parse template: %w", err)
	}
	if pm.templates[key] == nil {
		pm.templates[key] = make(map[ModelProvider]*template.Template)
	}
	pm.templates[key][provider] = tmpl
	return nil
}

// Get returns the template for provider, falling back to the default variant.
func (pm *PromptManager) Get(key PromptKey, provider ModelProvider) (*template.Template, error) {
	variants, ok := pm.templates[key]
	if !ok {
		return nil, fmt.Errorf("no prompts found for key '%s'", key)
	}
	if tmpl, ok := variants[provider]; ok {
		return tmpl, nil
	}
	if tmpl, ok := variants[DefaultProvider]; ok {
		return tmpl, nil
	}
	return nil, fmt.Errorf("no template for key '%s' and provider '%s'", key, provider)
}

// Render executes the template and trims surrounding whitespace.
func (pm *PromptManager) Render(key PromptKey, provider ModelProvider, data any) (string, error) {
	tmpl, err := pm.Get(key, provider)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
