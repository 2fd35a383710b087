package llm

import (
	"context"
	"fmt"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a prompt sent to a chat model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Params are the sampling parameters of a single completion call.
type Params struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
type ChatModel interface {
	Complete(ctx context.Context, params Params, messages []Message) (string, error)
	ListModels(ctx context.Context) ([]string, error)
}

// ErrorKind classifies why a provider call failed.
type ErrorKind string

const (
	// KindUnavailable: the provider could not be reached.
	KindUnavailable ErrorKind = "unavailable"
	// KindRejected: the provider answered with an error (auth, quota, bad request).
	KindRejected ErrorKind = "rejected"
	// KindEmpty: the provider answered without any choices.
	KindEmpty ErrorKind = "empty"
)

// Error is the failure result of a ChatModel call.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("llm %s [%d]: %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("llm %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
