package chat

import "github.com/artem13815/chatbot/pkg/llm"

// TokenCounter measures the prompt size of a message list.
type TokenCounter interface {
	Count(messages []llm.Message) int
}

// trimHistory drops the oldest history turns until the prompt fits into
// budget. The system instruction (first) and the new message (last) are kept
// even if they alone exceed it.
func trimHistory(prompt []llm.Message, counter TokenCounter, budget int) []llm.Message {
	if counter == nil || budget <= 0 {
		return prompt
	}
	for len(prompt) > 2 && counter.Count(prompt) > budget {
		prompt = append(prompt[:1:1], prompt[2:]...)
	}
	return prompt
}
