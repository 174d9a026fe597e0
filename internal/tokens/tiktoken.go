package tokens

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the BPE encoding used when none is configured
const DefaultEncoding = "cl100k_base"

// EncodingEstimate disables exact counting; every count uses Estimate
const EncodingEstimate = "estimate"

type encoder interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
}

type lazyTokenizer struct {
	name string
	load func() (encoder, error)
}

// NewTiktoken returns a tokenizer for the named encoding. The encoding is
// loaded on first use; a failed load is remembered and reported on every call.
func NewTiktoken(encoding string) Tokenizer {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	return newLazyTokenizer(encoding, func() (encoder, error) {
		enc, err := tiktoken.GetEncoding(encoding)
		if err != nil {
			return nil, err
		}
		return enc, nil
	})
}

func newLazyTokenizer(name string, load func() (encoder, error)) *lazyTokenizer {
	return &lazyTokenizer{
		name: name,
		load: sync.OnceValues(load),
	}
}

func (t *lazyTokenizer) Encode(text string) ([]int, error) {
	enc, err := t.load()
	if err != nil {
		return nil, fmt.Errorf("load encoding %s: %w", t.name, err)
	}
	return enc.Encode(text, nil, nil), nil
}
