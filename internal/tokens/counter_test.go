package tokens

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingTokenizer struct{}

func (failingTokenizer) Encode(string) ([]int, error) {
	return nil, errors.New("vocabulary download failed")
}

type panickingTokenizer struct{}

func (panickingTokenizer) Encode(string) ([]int, error) {
	panic("corrupt merge table")
}

type wordTokenizer struct{}

func (wordTokenizer) Encode(text string) ([]int, error) {
	return make([]int, len(strings.Fields(text))), nil
}

func TestCountFallsBackOnError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c := NewCounter(failingTokenizer{}, logger)

	assert.Equal(t, 1, c.Count("abcd"))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestCountFallsBackOnPanic(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c := NewCounter(panickingTokenizer{}, logger)

	assert.Equal(t, 2, c.Count("abcdefg"))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "corrupt merge table", hook.LastEntry().Data["panic"])
}

func TestCountWithoutTokenizer(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c := NewCounter(nil, logger)

	assert.Equal(t, 3, c.Count("hello world"))
	assert.Equal(t, 1, c.Count("abc"))
	assert.Empty(t, hook.Entries)

	logger.SetLevel(logrus.DebugLevel)
	c.Count("abc")
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
}

func TestCountExact(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c := NewCounter(wordTokenizer{}, logger)

	assert.Equal(t, 3, c.Count("one two three"))
	assert.Empty(t, hook.Entries)
}

func TestCountEmpty(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c := NewCounter(failingTokenizer{}, logger)

	assert.Equal(t, 0, c.Count(""))
	assert.Empty(t, hook.Entries)
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 400), 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Estimate(tt.text), "Estimate(%q)", tt.text)
	}
}

type fakeEncoder struct{}

func (fakeEncoder) Encode(text string, _, _ []string) []int {
	return make([]int, len(text))
}

func TestLazyTokenizerLoadsOnce(t *testing.T) {
	var loads atomic.Int32
	tok := newLazyTokenizer("fake", func() (encoder, error) {
		loads.Add(1)
		return fakeEncoder{}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids, err := tok.Encode("abc")
			assert.NoError(t, err)
			assert.Len(t, ids, 3)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
}

func TestLazyTokenizerRemembersFailure(t *testing.T) {
	var loads atomic.Int32
	tok := newLazyTokenizer("fake", func() (encoder, error) {
		loads.Add(1)
		return nil, errors.New("offline")
	})

	logger, hook := test.NewNullLogger()
	c := NewCounter(tok, logger)

	assert.Equal(t, 1, c.Count("abcd"))
	assert.Equal(t, 1, c.Count("wxyz"))
	assert.Equal(t, int32(1), loads.Load())
	assert.Len(t, hook.Entries, 2)
	assert.Contains(t, hook.LastEntry().Data[logrus.ErrorKey].(error).Error(), "load encoding fake")
}

func TestContextLimit(t *testing.T) {
	tests := []struct {
		model string
		want  int
	}{
		{"claude-3-5-sonnet-20241022", 200000},
		{"gpt-4o-mini", 128000},
		{"gpt-4", 8000},
		{"llama3.1:8b", 128000},
		{"gemini-1.5-pro", 1000000},
		{"something-else", DefaultContextLimit},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, ContextLimit(tt.model))
		})
	}

	assert.InDelta(t, 0.5, ContextUsed(100000, "claude-3-opus"), 1e-9)
}
