package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/chatbot/api/http/handlers"
	"github.com/artem13815/chatbot/pkg/chat"
	"github.com/artem13815/chatbot/pkg/health"
	"github.com/artem13815/chatbot/pkg/health/checkers"
	"github.com/artem13815/chatbot/pkg/llm"
)

type fakeModel struct {
	answer   string
	err      error
	models   []string
	listErr  error
	messages []llm.Message
}

func (f *fakeModel) Complete(_ context.Context, _ llm.Params, messages []llm.Message) (string, error) {
	f.messages = messages
	return f.answer, f.err
}

func (f *fakeModel) ListModels(context.Context) ([]string, error) {
	return f.models, f.listErr
}

func newTestApp(t *testing.T, m *fakeModel, frontendDir string) *fiber.App {
	t.Helper()
	svc := chat.NewService(m, chat.Options{
		SystemPrompt: "sys",
		Params:       llm.Params{Model: "gpt-3.5-turbo", MaxTokens: 500, Temperature: 0.7},
		ModelFilter:  "gpt",
	})
	app := NewApp()
	Register(app,
		handlers.NewHealthHandler(health.NewService(checkers.NewLLMChecker(m))),
		handlers.NewChatHandler(svc),
		handlers.NewUIHandler(frontendDir),
	)
	return app
}

func writeFrontend(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"),
		[]byte(`<html><title>Sample Chatbot</title><div class="chat-container"></div></html>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte(`console.log("ok")`), 0o644))
	return dir
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func TestHealth_IndependentOfProvider(t *testing.T) {
	app := newTestApp(t, &fakeModel{err: errors.New("down"), listErr: errors.New("down")}, t.TempDir())

	status, body := do(t, app, fiber.MethodGet, "/health", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]any{"status": "healthy", "message": "Chatbot is running"}, decode(t, body))
}

func TestReady(t *testing.T) {
	status, body := do(t, newTestApp(t, &fakeModel{}, t.TempDir()), fiber.MethodGet, "/ready", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ready", decode(t, body)["status"])

	status, body = do(t, newTestApp(t, &fakeModel{listErr: errors.New("401")}, t.TempDir()), fiber.MethodGet, "/ready", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	got := decode(t, body)
	assert.Equal(t, "not_ready", got["status"])
	assert.Equal(t, "llm: 401", got["details"])
}

func TestIndex(t *testing.T) {
	app := newTestApp(t, &fakeModel{}, writeFrontend(t))

	status, body := do(t, app, fiber.MethodGet, "/", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "chat-container")
	assert.Contains(t, string(body), "Sample Chatbot")

	status, body = do(t, app, fiber.MethodGet, "/static/app.js", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, `console.log("ok")`, string(body))
}

func TestIndex_BundledFrontendAssetsResolve(t *testing.T) {
	app := newTestApp(t, &fakeModel{}, filepath.Join("..", "..", "frontend"))

	status, body := do(t, app, fiber.MethodGet, "/", "")
	require.Equal(t, fiber.StatusOK, status)

	for _, asset := range []string{StaticMount + "/style.css", StaticMount + "/app.js"} {
		assert.Contains(t, string(body), `"`+asset+`"`)
		status, _ := do(t, app, fiber.MethodGet, asset, "")
		assert.Equal(t, fiber.StatusOK, status, asset)
	}
}

func TestIndex_MissingFrontend(t *testing.T) {
	app := newTestApp(t, &fakeModel{}, filepath.Join(t.TempDir(), "nope"))

	status, body := do(t, app, fiber.MethodGet, "/", "")

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Frontend files not found", decode(t, body)["message"])
}

func TestChat_Success(t *testing.T) {
	m := &fakeModel{answer: "I'm a helpful assistant."}
	app := newTestApp(t, m, t.TempDir())

	before := time.Now().UTC().Add(-time.Second)
	status, body := do(t, app, fiber.MethodPost, "/api/chat",
		`{"message":"Hello, can you introduce yourself?","history":[{"role":"user","content":"hi"},{"role":"assistant","content":"hey"}]}`)

	require.Equal(t, fiber.StatusOK, status, string(body))
	got := decode(t, body)
	assert.Equal(t, "I'm a helpful assistant.", got["response"])
	ts, err := time.Parse(time.RFC3339, got["timestamp"].(string))
	require.NoError(t, err)
	assert.False(t, ts.Before(before.Truncate(time.Second)))

	require.Len(t, m.messages, 4)
	assert.Equal(t, llm.Message{Role: "system", Content: "sys"}, m.messages[0])
	assert.Equal(t, llm.Message{Role: "user", Content: "Hello, can you introduce yourself?"}, m.messages[3])
}

func TestChat_HistoryDefaultsToEmpty(t *testing.T) {
	m := &fakeModel{answer: "ok"}
	app := newTestApp(t, m, t.TempDir())

	status, _ := do(t, app, fiber.MethodPost, "/api/chat", `{"message":"hi"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, m.messages, 2)
}

func TestChat_RejectsMalformedInput(t *testing.T) {
	tests := map[string]struct {
		body string
		want string
	}{
		"not json":        {body: `{"message":`, want: "invalid JSON payload"},
		"non-string text": {body: `{"message":"hi","history":[{"role":"user","content":5}]}`, want: "invalid JSON payload"},
		"missing message": {body: `{"history":[]}`, want: "message is required"},
		"bad role":        {body: `{"message":"hi","history":[{"role":"robot","content":"x"}]}`, want: `history[0]: unsupported role "robot"`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := &fakeModel{answer: "never"}
			app := newTestApp(t, m, t.TempDir())

			status, body := do(t, app, fiber.MethodPost, "/api/chat", tt.body)

			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, tt.want, decode(t, body)["message"])
			assert.Nil(t, m.messages)
		})
	}
}

func TestChat_ProviderUnreachable(t *testing.T) {
	m := &fakeModel{err: &llm.Error{Kind: llm.KindUnavailable, Err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused")}}
	app := newTestApp(t, m, t.TempDir())

	status, body := do(t, app, fiber.MethodPost, "/api/chat", `{"message":"hi","history":[]}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	msg := decode(t, body)["message"].(string)
	assert.True(t, strings.HasPrefix(msg, "Chat error: "), msg)
	assert.Contains(t, msg, "connection refused")
}

func TestModels(t *testing.T) {
	app := newTestApp(t, &fakeModel{models: []string{"gpt-4o", "tts-1", "gpt-3.5-turbo"}}, t.TempDir())

	status, body := do(t, app, fiber.MethodGet, "/api/models", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]any{"models": []any{"gpt-3.5-turbo", "gpt-4o"}}, decode(t, body))
}

func TestModels_EmptyCatalog(t *testing.T) {
	app := newTestApp(t, &fakeModel{models: []string{"tts-1"}}, t.TempDir())

	_, body := do(t, app, fiber.MethodGet, "/api/models", "")

	assert.Equal(t, map[string]any{"models": []any{}}, decode(t, body))
}

func TestModels_FailureInBody(t *testing.T) {
	app := newTestApp(t, &fakeModel{listErr: errors.New("invalid api key")}, t.TempDir())

	status, body := do(t, app, fiber.MethodGet, "/api/models", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]any{"error": "invalid api key"}, decode(t, body))
}

func TestPanicIsRecovered(t *testing.T) {
	app := NewApp()
	app.Get("/boom", func(*fiber.Ctx) error { panic("kaboom") })

	status, body := do(t, app, fiber.MethodGet, "/boom", "")

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "kaboom", decode(t, body)["message"])
}
