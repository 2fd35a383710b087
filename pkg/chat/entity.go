package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/artem13815/chatbot/pkg/llm"
)

// Turn is one prior exchange supplied by the caller.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a validated chat request. Build it with ParseRequest.
type Request struct {
	Message string
	History []Turn
}

// Response is the answer relayed back to the caller.
type Response struct {
	Text      string
	Timestamp time.Time
}

var allowedRoles = map[string]struct{}{
	llm.RoleSystem:    {},
	llm.RoleUser:      {},
	llm.RoleAssistant: {},
}

// ParseRequest validates raw caller input. A nil history is treated as empty.
func ParseRequest(message string, history []Turn) (Request, error) {
	if strings.TrimSpace(message) == "" {
		return Request{}, newError(ErrorInvalidInput, "message is required", nil)
	}
	turns := make([]Turn, 0, len(history))
	for i, t := range history {
		role := strings.ToLower(strings.TrimSpace(t.Role))
		if _, ok := allowedRoles[role]; !ok {
			return Request{}, newError(ErrorInvalidInput, fmt.Sprintf("history[%d]: unsupported role %q", i, t.Role), nil)
		}
		turns = append(turns, Turn{Role: role, Content: t.Content})
	}
	return Request{Message: message, History: turns}, nil
}
