// Package style loads rewriting styles: markdown files with YAML frontmatter
// that steer how a prompt is refined for a particular kind of task.
package style

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Auto asks the matcher to pick a style for the prompt
const Auto = "auto"

// Metadata is the frontmatter of a style file
type Metadata struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Path        string `yaml:"-" json:"-"`
	Builtin     bool   `yaml:"-" json:"builtin"`
}

// Style is a full style including its instructions
type Style struct {
	Metadata
	Body string `json:"-"`
}

var (
	invalidName = regexp.MustCompile(`[^a-z0-9-]`)
	dashes      = regexp.MustCompile(`-+`)
)

// Parse reads a style from its file content. fallbackName is used when the
// frontmatter has no name.
func Parse(fallbackName string, content []byte) (*Style, error) {
	text := strings.TrimPrefix(string(content), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	s := &Style{}
	if rest, ok := strings.CutPrefix(text, "---\n"); ok {
		var front, body string
		if after, empty := strings.CutPrefix(rest, "---"); empty {
			body = after
		} else {
			var found bool
			front, body, found = strings.Cut(rest, "\n---")
			if !found {
				return nil, fmt.Errorf("style %s: unterminated frontmatter", fallbackName)
			}
		}
		if err := yaml.Unmarshal([]byte(front), &s.Metadata); err != nil {
			return nil, fmt.Errorf("style %s: %w", fallbackName, err)
		}
		text = body
	}

	s.Body = strings.TrimSpace(text)
	if s.Name == "" {
		s.Name = fallbackName
	}
	s.Name = sanitizeName(s.Name)

	switch {
	case s.Name == "":
		return nil, errors.New("style has no name")
	case s.Name == Auto:
		return nil, fmt.Errorf("style name %q is reserved", Auto)
	case s.Body == "":
		return nil, fmt.Errorf("style %s: no instructions", s.Name)
	}
	return s, nil
}

// LoadFile reads a style from disk, named after the file when the
// frontmatter doesn't say
func LoadFile(path string) (*Style, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.EqualFold(name, "STYLE") {
		name = filepath.Base(filepath.Dir(path))
	}

	s, err := Parse(name, content)
	if err != nil {
		return nil, err
	}
	s.Path = path
	return s, nil
}

func sanitizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")
	name = invalidName.ReplaceAllString(name, "")
	name = dashes.ReplaceAllString(name, "-")
	return strings.Trim(name, "-")
}
