// Package tokens counts and classifies prompt sizes.
package tokens

import (
	"fmt"

	"github.com/sant0-9/sharpen/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Tokenizer produces exact token ids for a model encoding
type Tokenizer interface {
	Encode(text string) ([]int, error)
}

// Counter counts tokens with an exact tokenizer when one is available and
// falls back to a character estimate otherwise.
type Counter struct {
	tokenizer Tokenizer
	logger    logrus.FieldLogger
}

// NewCounter creates a counter. A nil tokenizer always uses the estimate and
// is not treated as a fallback.
func NewCounter(tokenizer Tokenizer, logger logrus.FieldLogger) *Counter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Counter{
		tokenizer: tokenizer,
		logger:    logger,
	}
}

// Count returns the number of tokens in text. It never fails.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}

	if c.tokenizer == nil {
		c.logger.Debug("exact counting disabled, estimating token count")
		return Estimate(text)
	}

	if n, ok := c.exact(text); ok {
		return n
	}

	metrics.TokenizerFallbacks.Inc()
	return Estimate(text)
}

// exact reports ok=false when the tokenizer errors or panics.
func (c *Counter) exact(text string) (n int, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.WithField("panic", fmt.Sprint(r)).Warn("tokenizer unavailable, estimating token count")
			n, ok = 0, false
		}
	}()

	ids, err := c.tokenizer.Encode(text)
	if err != nil {
		c.logger.WithError(err).Warn("tokenizer unavailable, estimating token count")
		return 0, false
	}
	return len(ids), true
}

// Estimate returns approximate token count (~4 bytes per token, rounded up)
func Estimate(text string) int {
	return (len(text) + 3) / 4
}
