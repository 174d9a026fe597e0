package style

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

//go:embed builtin/*.md
var builtinFS embed.FS

// ErrUnknown is returned when a requested style doesn't exist
var ErrUnknown = errors.New("unknown style")

// Index holds every available style. User styles override builtins with
// the same name.
type Index struct {
	styles map[string]*Style
	dir    string
}

// NewIndex loads the builtin styles and any in dir. dir may be empty or
// missing. Files that fail to parse are logged and skipped.
func NewIndex(dir string, logger logrus.FieldLogger) (*Index, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	idx := &Index{
		styles: make(map[string]*Style),
		dir:    dir,
	}

	if err := idx.loadBuiltins(); err != nil {
		return nil, err
	}
	if dir == "" {
		return idx, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return idx, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		var p string
		switch {
		case entry.IsDir():
			p = filepath.Join(dir, entry.Name(), "STYLE.md")
			if _, err := os.Stat(p); err != nil {
				continue
			}
		case strings.EqualFold(filepath.Ext(entry.Name()), ".md"):
			p = filepath.Join(dir, entry.Name())
		default:
			continue
		}

		s, err := LoadFile(p)
		if err != nil {
			logger.WithError(err).WithField("path", p).Warn("skipping invalid style")
			continue
		}
		idx.styles[s.Name] = s
	}

	return idx, nil
}

func (idx *Index) loadBuiltins() error {
	return fs.WalkDir(builtinFS, "builtin", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := builtinFS.ReadFile(p)
		if err != nil {
			return err
		}
		s, err := Parse(strings.TrimSuffix(path.Base(p), ".md"), content)
		if err != nil {
			return fmt.Errorf("builtin %w", err)
		}
		s.Builtin = true
		idx.styles[s.Name] = s
		return nil
	})
}

// Get returns a style by name, or nil
func (idx *Index) Get(name string) *Style {
	if idx == nil {
		return nil
	}
	return idx.styles[name]
}

// Lookup is Get with an ErrUnknown error for missing names
func (idx *Index) Lookup(name string) (*Style, error) {
	if s := idx.Get(name); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
}

// All returns every style sorted by name
func (idx *Index) All() []*Style {
	if idx == nil {
		return nil
	}
	out := make([]*Style, 0, len(idx.styles))
	for _, s := range idx.styles {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns every style name, sorted
func (idx *Index) Names() []string {
	all := idx.All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}

func (idx *Index) Count() int {
	if idx == nil {
		return 0
	}
	return len(idx.styles)
}

// Dir returns the user styles directory
func (idx *Index) Dir() string {
	return idx.dir
}
