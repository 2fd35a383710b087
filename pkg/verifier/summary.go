package verifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

var ErrEmptyURL = errors.New("URL is required")

// Summary is the machine-readable outcome of a run.
type Summary struct {
	RunID     string          `json:"run_id"`
	Timestamp string          `json:"timestamp"`
	URL       string          `json:"url"`
	Results   map[string]bool `json:"results"`
	AllPassed bool            `json:"all_passed"`

	Order  []string `json:"-"`
	Passed int      `json:"-"`
	Total  int      `json:"-"`
}

func (s *Summary) finish() {
	s.Total = len(s.Results)
	s.Passed = 0
	for _, ok := range s.Results {
		if ok {
			s.Passed++
		}
	}
	s.AllPassed = s.Total > 0 && s.Passed == s.Total
}

// WriteSummary stores s as indented JSON at path.
func WriteSummary(path string, s Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// NormalizeURL trims raw, defaults the scheme to https and drops trailing slashes.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}
