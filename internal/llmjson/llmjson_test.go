package llmjson

import (
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare object", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```"},
		{"uppercase tag", "```JSON\n{\"a\":1}\n```"},
		{"untagged fence", "```\n{\"a\":1}\n```"},
		{"surrounding whitespace", "  \n```json\n  {\"a\":1}  \n```\n\n"},
		{"fence on one line", "```json {\"a\":1}```"},
		{"missing closing fence", "```json\n{\"a\":1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse[map[string]int](tt.input)
			require.NoError(t, err)
			assert.Equal(t, map[string]int{"a": 1}, got)
		})
	}
}

func TestParseIntoStruct(t *testing.T) {
	type reply struct {
		Prompt  string   `json:"prompt"`
		Changes []string `json:"changes"`
	}

	got, err := Parse[reply]("```json\n{\"prompt\":\"p\",\"changes\":[\"x\"],\"extra\":true}\n```")
	require.NoError(t, err)
	assert.Equal(t, reply{Prompt: "p", Changes: []string{"x"}}, got)
}

func TestParseDoesNotValidateShape(t *testing.T) {
	type reply struct {
		Prompt string `json:"prompt"`
	}

	got, err := Parse[reply](`{"something":"else"}`)
	require.NoError(t, err)
	assert.Empty(t, got.Prompt)
}

func TestParseFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	SetLogger(logger)
	t.Cleanup(func() { SetLogger(logrus.StandardLogger()) })

	inputs := []string{"not json", "", "```json\n{\"a\":\n```", "Sure! Here it is: {\"a\":1}"}
	for _, in := range inputs {
		hook.Reset()

		_, err := Parse[map[string]any](in)
		require.Error(t, err)

		var pe *ParseError
		assert.True(t, errors.As(err, &pe), "error is %T", err)
		assert.Equal(t, ParseErrorMessage, err.Error())

		require.Len(t, hook.Entries, 1)
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		assert.NotNil(t, hook.LastEntry().Data[logrus.ErrorKey])
	}
}

func TestUnwrap(t *testing.T) {
	assert.Equal(t, `[1,2]`, Unwrap("```js\n[1,2]\n```"))
	assert.Equal(t, `plain`, Unwrap("  plain  "))
}

func TestSetLoggerWhileParsing(t *testing.T) {
	logger, hook := test.NewNullLogger()
	t.Cleanup(func() { SetLogger(logrus.StandardLogger()) })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetLogger(logger)
		}()
		go func() {
			defer wg.Done()
			_, _ = Parse[map[string]any](`{"a":1}`)
		}()
	}
	wg.Wait()

	SetLogger(nil)
	_, err := Parse[map[string]any]("not json")
	require.Error(t, err)
	require.Len(t, hook.Entries, 1)
}
