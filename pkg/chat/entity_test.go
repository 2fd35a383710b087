package chat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name    string
		message string
		history []Turn
		want    Request
		wantErr string
	}{
		{
			name:    "nil history becomes empty",
			message: "Hello, can you introduce yourself?",
			want:    Request{Message: "Hello, can you introduce yourself?", History: []Turn{}},
		},
		{
			name:    "roles are normalized",
			message: "next",
			history: []Turn{{Role: " User ", Content: "a"}, {Role: "ASSISTANT", Content: ""}},
			want:    Request{Message: "next", History: []Turn{{Role: "user", Content: "a"}, {Role: "assistant", Content: ""}}},
		},
		{
			name:    "blank message",
			message: "   ",
			wantErr: "message is required",
		},
		{
			name:    "unknown role",
			message: "hi",
			history: []Turn{{Role: "user", Content: "a"}, {Role: "tool", Content: "b"}},
			wantErr: `history[1]: unsupported role "tool"`,
		},
		{
			name:    "missing role",
			message: "hi",
			history: []Turn{{Content: "a"}},
			wantErr: `history[0]: unsupported role ""`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequest(tt.message, tt.history)
			if tt.wantErr != "" {
				var chatErr *Error
				require.True(t, errors.As(err, &chatErr))
				assert.Equal(t, ErrorInvalidInput, chatErr.Code)
				assert.Equal(t, tt.wantErr, chatErr.Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
