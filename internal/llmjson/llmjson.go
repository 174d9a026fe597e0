// Package llmjson decodes JSON that a model returned as plain text.
package llmjson

import (
	"encoding/json"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// ParseErrorMessage is the only text a caller sees when decoding fails
const ParseErrorMessage = "the model did not return valid structured data"

// ParseError reports that a model reply could not be decoded. The decoder's
// own error is logged, not exposed.
type ParseError struct{}

func (*ParseError) Error() string {
	return ParseErrorMessage
}

var (
	openingFence = regexp.MustCompile("(?i)^```[a-z0-9_+-]*[ \t]*\n?")
	closingFence = regexp.MustCompile("\n?```$")
)

type loggerRef struct {
	logrus.FieldLogger
}

var logger atomic.Pointer[loggerRef]

func init() {
	SetLogger(logrus.StandardLogger())
}

// SetLogger replaces the logger used for decode warnings. It is safe to call
// while Parse runs on other goroutines.
func SetLogger(l logrus.FieldLogger) {
	if l != nil {
		logger.Store(&loggerRef{l})
	}
}

// Parse strips an optional markdown code fence from text and decodes the
// rest into T. It does not validate the decoded shape.
func Parse[T any](text string) (T, error) {
	var out T

	content := Unwrap(text)
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		logger.Load().WithError(err).WithField("length", len(text)).Warn("failed to decode model reply as JSON")
		var zero T
		return zero, &ParseError{}
	}
	return out, nil
}

// Unwrap trims text and removes a leading ```lang fence and trailing ``` fence
func Unwrap(text string) string {
	content := strings.TrimSpace(text)
	content = openingFence.ReplaceAllString(content, "")
	content = closingFence.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}
