package style

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sant0-9/sharpen/internal/llm"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		fallback string
		content  string
		wantName string
		wantDesc string
		wantBody string
	}{
		{
			name:     "frontmatter",
			fallback: "file",
			content:  "---\nname: Legal Memo\ndescription: For lawyers.\n---\n\n- Cite sources.\n",
			wantName: "legal-memo",
			wantDesc: "For lawyers.",
			wantBody: "- Cite sources.",
		},
		{
			name:     "no frontmatter",
			fallback: "plain_notes",
			content:  "Be brief.",
			wantName: "plain-notes",
			wantBody: "Be brief.",
		},
		{
			name:     "empty frontmatter",
			fallback: "empty",
			content:  "---\n---\nBe brief.",
			wantName: "empty",
			wantBody: "Be brief.",
		},
		{
			name:     "crlf and bom",
			fallback: "win",
			content:  "\ufeff---\r\nname: windows\r\n---\r\nBe brief.\r\n",
			wantName: "windows",
			wantBody: "Be brief.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse(tt.fallback, []byte(tt.content))
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, s.Name)
			assert.Equal(t, tt.wantDesc, s.Description)
			assert.Equal(t, tt.wantBody, s.Body)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unterminated", "---\nname: x\nBe brief.", "unterminated frontmatter"},
		{"bad yaml", "---\nname: [x\n---\nBe brief.", "style x"},
		{"reserved", "---\nname: auto\n---\nBe brief.", "reserved"},
		{"no body", "---\nname: x\n---\n  \n", "no instructions"},
		{"no name", "---\nname: '!!!'\n---\nBe brief.", "no name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("x", []byte(tt.content))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestBuiltins(t *testing.T) {
	idx, err := NewIndex("", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"coding-agent", "concise", "structured-output"}, idx.Names())
	for _, s := range idx.All() {
		assert.True(t, s.Builtin, s.Name)
		assert.NotEmpty(t, s.Description, s.Name)
		assert.NotEmpty(t, s.Body, s.Name)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNewIndexLoadsUserStyles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "concise.md"), "---\ndescription: My own concise.\n---\nOne sentence only.")
	writeFile(t, filepath.Join(dir, "release-notes", "STYLE.md"), "Group changes by type.")
	writeFile(t, filepath.Join(dir, "broken.md"), "---\nname: broken\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty-dir"), 0755))

	logger, hook := test.NewNullLogger()
	idx, err := NewIndex(dir, logger)
	require.NoError(t, err)

	assert.Equal(t, dir, idx.Dir())
	assert.Equal(t, []string{"coding-agent", "concise", "release-notes", "structured-output"}, idx.Names())

	concise := idx.Get("concise")
	require.NotNil(t, concise)
	assert.False(t, concise.Builtin)
	assert.Equal(t, "One sentence only.", concise.Body)
	assert.Equal(t, filepath.Join(dir, "concise.md"), concise.Path)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, filepath.Join(dir, "broken.md"), hook.LastEntry().Data["path"])
}

func TestNewIndexMissingDir(t *testing.T) {
	idx, err := NewIndex(filepath.Join(t.TempDir(), "nope"), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Count())
}

func TestLookup(t *testing.T) {
	idx, err := NewIndex("", nil)
	require.NoError(t, err)

	s, err := idx.Lookup("concise")
	require.NoError(t, err)
	assert.Equal(t, "concise", s.Name)

	_, err = idx.Lookup("pirate")
	assert.ErrorIs(t, err, ErrUnknown)

	var nilIdx *Index
	_, err = nilIdx.Lookup("concise")
	assert.ErrorIs(t, err, ErrUnknown)
}

type fakeProvider struct {
	content string
	got     *llm.CompletionRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Ping(context.Context) error { return nil }

func (f *fakeProvider) Complete(_ context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.got = req
	return &llm.CompletionResponse{Content: f.content}, nil
}

func TestMatcher(t *testing.T) {
	idx, err := NewIndex("", nil)
	require.NoError(t, err)

	p := &fakeProvider{content: "```json\n{\"style\": \"structured-output\", \"confidence\": 0.8}\n```"}
	m, err := NewMatcher(p, "test-model", idx).Match(context.Background(), "extract all dates as json")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "structured-output", m.Style.Name)
	assert.InDelta(t, 0.8, m.Confidence, 1e-9)

	require.NotNil(t, p.got)
	prompt := p.got.Messages[0].Content
	assert.Contains(t, prompt, `"extract all dates as json"`)
	assert.Contains(t, prompt, "- coding-agent: ")
	assert.Contains(t, prompt, "- concise: ")
}

func TestMatcherNoStyles(t *testing.T) {
	p := &fakeProvider{}

	m, err := NewMatcher(p, "test-model", &Index{styles: map[string]*Style{}}).Match(context.Background(), "x")
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Nil(t, p.got)
}

func TestGenerator(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "styles")
	p := &fakeProvider{content: "```markdown\n---\nname: SQL Queries\ndescription: Prompts that ask for SQL.\n---\n\n- Name the dialect.\n```"}

	s, err := NewGenerator(p, "test-model", dir).Generate(context.Background(), "prompts for writing SQL")
	require.NoError(t, err)

	assert.Equal(t, "sql-queries", s.Name)
	assert.Equal(t, filepath.Join(dir, "sql-queries.md"), s.Path)
	assert.Contains(t, p.got.Messages[0].Content, `"prompts for writing SQL"`)

	loaded, err := LoadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, "sql-queries", loaded.Name)
	assert.Equal(t, "Prompts that ask for SQL.", loaded.Description)
	assert.Equal(t, "- Name the dialect.", loaded.Body)

	_, err = NewGenerator(p, "test-model", dir).Generate(context.Background(), "again")
	assert.ErrorIs(t, err, ErrExists)
}

func TestGeneratorErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewGenerator(&fakeProvider{}, "m", dir).Generate(context.Background(), "  ")
	assert.EqualError(t, err, "style description is required")

	_, err = NewGenerator(&fakeProvider{content: "---\nname: auto\n---\nx"}, "m", dir).Generate(context.Background(), "x")
	assert.ErrorContains(t, err, "model returned an invalid style")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
