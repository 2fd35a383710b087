// Package verifier smoke-tests a deployed chatbot over HTTP.
//
// The four checks run sequentially, each with its own deadline. A failing or
// panicking check is reported and the remaining checks still run.
package verifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/panics"
)

const (
	ChatProbeMessage = "Hello, can you introduce yourself?"

	CheckHealth = "health"
	CheckChat   = "chat"
	CheckModels = "models"
	CheckUI     = "ui"

	maxBodyBytes = 1 << 20
)

// DefaultUIMarkers must all appear in the root page.
var DefaultUIMarkers = []string{"chat-container", "Sample Chatbot"}

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

type Verifier struct {
	baseURL     string
	client      *http.Client
	out         io.Writer
	now         func() time.Time
	getTimeout  time.Duration
	chatTimeout time.Duration
	uiMarkers   []string
}

type Option func(*Verifier)

func WithHTTPClient(c *http.Client) Option { return func(v *Verifier) { v.client = c } }

func WithClock(now func() time.Time) Option { return func(v *Verifier) { v.now = now } }

// WithTimeouts overrides the 10s GET and 30s chat deadlines.
func WithTimeouts(get, chat time.Duration) Option {
	return func(v *Verifier) {
		v.getTimeout = get
		v.chatTimeout = chat
	}
}

func WithUIMarkers(markers ...string) Option {
	return func(v *Verifier) { v.uiMarkers = markers }
}

// New creates a verifier for baseURL that prints status lines to out.
func New(baseURL string, out io.Writer, opts ...Option) *Verifier {
	v := &Verifier{
		baseURL:     strings.TrimRight(baseURL, "/"),
		client:      &http.Client{},
		out:         out,
		now:         time.Now,
		getTimeout:  10 * time.Second,
		chatTimeout: 30 * time.Second,
		uiMarkers:   DefaultUIMarkers,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type check struct {
	name string
	run  func(ctx context.Context) (string, error)
}

// Run executes every check and returns the aggregated summary.
func (v *Verifier) Run(ctx context.Context) Summary {
	v.printf("%s\n", headerStyle.Render("Starting verification of "+v.baseURL))
	v.rule()

	checks := []check{
		{CheckHealth, v.checkHealth},
		{CheckChat, v.checkChat},
		{CheckModels, v.checkModels},
		{CheckUI, v.checkUI},
	}
	s := Summary{
		RunID:     uuid.NewString(),
		Timestamp: v.now().UTC().Format(time.RFC3339),
		URL:       v.baseURL,
		Results:   make(map[string]bool, len(checks)),
	}
	for _, c := range checks {
		s.Order = append(s.Order, c.name)
		s.Results[c.name] = v.guard(ctx, c)
	}
	s.finish()

	v.rule()
	v.printSummary(s)
	return s
}

// guard runs one check and reduces it to pass/fail. Errors and panics never
// leave this function.
func (v *Verifier) guard(ctx context.Context, c check) bool {
	var (
		detail string
		err    error
		pc     panics.Catcher
	)
	v.printf("Testing %s...\n", c.name)
	pc.Try(func() { detail, err = c.run(ctx) })
	if r := pc.Recovered(); r != nil {
		err = fmt.Errorf("%s check panicked: %w", c.name, r.AsError())
	}
	if err != nil {
		v.printf("%s %v\n", failStyle.Render("✗"), err)
		return false
	}
	v.printf("%s %s\n", passStyle.Render("✓"), detail)
	return true
}

func (v *Verifier) printSummary(s Summary) {
	v.printf("%s\n", headerStyle.Render("Test Results Summary:"))
	for _, name := range s.Order {
		status := passStyle.Render("PASS")
		if !s.Results[name] {
			status = failStyle.Render("FAIL")
		}
		v.printf("  %s: %s\n", strings.ToUpper(name[:1])+name[1:], status)
	}
	v.printf("\nOverall Score: %d/%d tests passed\n", s.Passed, s.Total)
	if s.AllPassed {
		v.printf("All tests passed! The chatbot is working correctly.\n")
	} else {
		v.printf("Some tests failed. Check the errors above.\n")
	}
}

func (v *Verifier) rule() { v.printf("%s\n", strings.Repeat("=", 50)) }

func (v *Verifier) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(v.out, format, args...)
}
