package style

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sant0-9/sharpen/internal/llm"
)

const generateTimeout = 30 * time.Second

// ErrExists is returned when a generated style would overwrite a file
var ErrExists = errors.New("style already exists")

// Generator drafts new styles with the model and writes them to dir
type Generator struct {
	provider llm.Provider
	model    string
	dir      string
}

func NewGenerator(provider llm.Provider, model, dir string) *Generator {
	return &Generator{
		provider: provider,
		model:    model,
		dir:      dir,
	}
}

// Generate asks the model for a style matching description and saves it
// as <dir>/<name>.md
func (g *Generator) Generate(ctx context.Context, description string) (*Style, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errors.New("style description is required")
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	resp, err := g.provider.Complete(ctx, &llm.CompletionRequest{
		Model: g.model,
		Messages: []llm.Message{
			{Role: "user", Content: buildGeneratorPrompt(description)},
		},
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}

	s, err := Parse("generated", []byte(stripFence(resp.Content)))
	if err != nil {
		return nil, fmt.Errorf("model returned an invalid style: %w", err)
	}
	if err := g.save(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (g *Generator) save(s *Style) error {
	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(g.dir, s.Name+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return err
	}
	defer f.Close()

	content := fmt.Sprintf("---\nname: %s\ndescription: %q\n---\n\n%s\n", s.Name, s.Description, s.Body)
	if _, err := f.WriteString(content); err != nil {
		return err
	}
	s.Path = path
	return nil
}

func buildGeneratorPrompt(description string) string {
	return fmt.Sprintf(`Create a rewriting style for LLM prompts based on this description:

"%s"

A style tells a prompt editor how to rewrite prompts for one kind of task.
Generate a complete style file with YAML frontmatter and a markdown body.

Requirements:
1. The "name" should be lowercase with hyphens (e.g., sql-queries, release-notes)
2. The "description" should be one sentence saying which prompts the style fits
3. The body should be a short list of rewriting guidelines

Respond with ONLY the file content, starting with --- and ending with the markdown body.

Example format:
---
name: style-name
description: Prompts that ask for X.
---

- Guideline 1
- Guideline 2`, description)
}

// stripFence removes a surrounding markdown code fence
func stripFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.HasPrefix(strings.TrimSpace(lines[n-1]), "```") {
		lines = lines[:n-1]
	}
	return strings.Join(lines, "\n")
}
