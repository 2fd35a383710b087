package chat

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/artem13815/chatbot/pkg/llm"
)

// UseCase describes the chat application use cases.
type UseCase interface {
	Reply(ctx context.Context, req Request) (Response, error)
	Models(ctx context.Context) ([]string, error)
}

type Options struct {
	SystemPrompt string
	Params       llm.Params
	// ModelFilter keeps only catalog ids containing this substring.
	ModelFilter string
	// MaxPromptTokens enables history trimming when positive and Counter is set.
	MaxPromptTokens int
	Counter         TokenCounter
	Now             func() time.Time
}

type service struct {
	llm  llm.ChatModel
	opts Options
}

// NewService creates the default implementation.
func NewService(model llm.ChatModel, opts Options) UseCase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{llm: model, opts: opts}
}

func (s *service) Reply(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Message) == "" {
		return Response{}, newError(ErrorInvalidInput, "message is required", nil)
	}
	prompt := s.buildPrompt(req)
	prompt = trimHistory(prompt, s.opts.Counter, s.opts.MaxPromptTokens)

	answer, err := s.llm.Complete(ctx, s.opts.Params, prompt)
	if err != nil {
		var llmErr *llm.Error
		if errors.As(err, &llmErr) && llmErr.Kind == llm.KindEmpty {
			return Response{}, newError(ErrorEmptyCompletion, "model returned no answer", err)
		}
		return Response{}, newError(ErrorUpstream, err.Error(), err)
	}
	if strings.TrimSpace(answer) == "" {
		return Response{}, newError(ErrorEmptyCompletion, "model returned no answer", nil)
	}
	return Response{Text: answer, Timestamp: s.opts.Now().UTC()}, nil
}

func (s *service) buildPrompt(req Request) []llm.Message {
	prompt := make([]llm.Message, 0, len(req.History)+2)
	prompt = append(prompt, llm.Message{Role: llm.RoleSystem, Content: s.opts.SystemPrompt})
	for _, t := range req.History {
		prompt = append(prompt, llm.Message{Role: t.Role, Content: t.Content})
	}
	return append(prompt, llm.Message{Role: llm.RoleUser, Content: req.Message})
}

func (s *service) Models(ctx context.Context) ([]string, error) {
	ids, err := s.llm.ListModels(ctx)
	if err != nil {
		return nil, newError(ErrorUpstream, err.Error(), err)
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if strings.Contains(id, s.opts.ModelFilter) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}
