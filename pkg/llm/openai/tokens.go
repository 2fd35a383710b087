package openai

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/artem13815/chatbot/pkg/llm"
)

const (
	tokensPerMessage = 3
	replyPriming     = 3
	fallbackEncoding = "cl100k_base"
)

// Encodings ship with the binary instead of being fetched on first use.
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// TokenCounter estimates the prompt size of a message list the way the
// chat completions endpoint bills it.
type TokenCounter struct {
	enc *tiktoken.Tiktoken
}

func NewTokenCounter(model string) (*TokenCounter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, fmt.Errorf("load %s encoding: %w", fallbackEncoding, err)
		}
	}
	return &TokenCounter{enc: enc}, nil
}

func (t *TokenCounter) Count(messages []llm.Message) int {
	n := replyPriming
	for _, m := range messages {
		n += tokensPerMessage
		n += len(t.enc.Encode(m.Role, nil, nil))
		n += len(t.enc.Encode(m.Content, nil, nil))
	}
	return n
}
