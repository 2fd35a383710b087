package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var errNotJSON = errors.New("response is not JSON")

func (v *Verifier) checkHealth(ctx context.Context) (string, error) {
	status, body, err := v.do(ctx, http.MethodGet, "/health", nil, v.getTimeout)
	if err != nil {
		return "", fmt.Errorf("health check error: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("health check failed: %d", status)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("health check error: %w", errNotJSON)
	}
	return fmt.Sprintf("Health check passed: %s", strings.TrimSpace(string(body))), nil
}

func (v *Verifier) checkChat(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"message": ChatProbeMessage,
		"history": []any{},
	})
	if err != nil {
		return "", err
	}
	status, body, err := v.do(ctx, http.MethodPost, "/api/chat", payload, v.chatTimeout)
	if err != nil {
		return "", fmt.Errorf("chat test error: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("chat test failed: %d, response: %s", status, strings.TrimSpace(string(body)))
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("chat test error: %w", errNotJSON)
	}
	answer := orDefault(gjson.GetBytes(body, "response"), "No response")
	ts := orDefault(gjson.GetBytes(body, "timestamp"), "No timestamp")
	return fmt.Sprintf("Chat test passed! AI response: %s (timestamp %s)", answer, ts), nil
}

func (v *Verifier) checkModels(ctx context.Context) (string, error) {
	status, body, err := v.do(ctx, http.MethodGet, "/api/models", nil, v.getTimeout)
	if err != nil {
		return "", fmt.Errorf("models endpoint error: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("models endpoint failed: %d", status)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("models endpoint error: %w", errNotJSON)
	}
	var models []string
	for _, m := range gjson.GetBytes(body, "models").Array() {
		models = append(models, m.String())
	}
	detail := fmt.Sprintf("Models endpoint passed: %d models available", len(models))
	if len(models) > 0 {
		detail += fmt.Sprintf(" (%s...)", strings.Join(models[:min(3, len(models))], ", "))
	}
	if e := gjson.GetBytes(body, "error"); e.Exists() {
		detail += fmt.Sprintf(", catalog error: %s", e.String())
	}
	return detail, nil
}

func (v *Verifier) checkUI(ctx context.Context) (string, error) {
	status, body, err := v.do(ctx, http.MethodGet, "", nil, v.getTimeout)
	if err != nil {
		return "", fmt.Errorf("UI accessibility error: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("UI accessibility failed: %d", status)
	}
	for _, m := range v.uiMarkers {
		if !bytes.Contains(body, []byte(m)) {
			return "", fmt.Errorf("UI accessible but content may be incomplete: %q not found", m)
		}
	}
	return "UI is accessible and contains expected elements", nil
}

func (v *Verifier) do(ctx context.Context, method, path string, payload []byte, timeout time.Duration) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, v.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, data, nil
}

func orDefault(r gjson.Result, def string) string {
	if !r.Exists() {
		return def
	}
	return r.String()
}
