package embedding

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter measures input against the provider's context limit.
type TokenCounter interface {
	Count(text string) (int, error)
}

// tiktokenCounter uses cl100k_base, the encoding of the OpenAI embedding models.
// The encoding is loaded lazily on first use.
type tiktokenCounter struct {
	once sync.Once
	enc  *tiktoken.Tiktoken
	err  error
}

func newTiktokenCounter() *tiktokenCounter {
	return &tiktokenCounter{}
}

func (c *tiktokenCounter) Count(text string) (int, error) {
	c.once.Do(func() {
		c.enc, c.err = tiktoken.GetEncoding("cl100k_base")
	})
	if c.err != nil {
		return 0, fmt.Errorf("load tokenizer: %w", c.err)
	}
	return len(c.enc.Encode(text, nil, nil)), nil
}
