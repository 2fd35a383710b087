package checkers

import (
	"context"
	"time"

	"github.com/artem13815/chatbot/pkg/llm"
)

// LLMChecker reports the completion provider ready when its model catalog
// can be listed.
type LLMChecker struct {
	model   llm.ChatModel
	timeout time.Duration
}

func NewLLMChecker(model llm.ChatModel) *LLMChecker {
	return &LLMChecker{model: model, timeout: 3 * time.Second}
}

func (c *LLMChecker) Name() string { return "llm" }

func (c *LLMChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	_, err := c.model.ListModels(ctx)
	return err
}
