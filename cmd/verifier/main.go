package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artem13815/chatbot/pkg/verifier"
)

var errChecksFailed = errors.New("some checks failed")

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "verifier [base-url]",
		Short: "Smoke-test a deployed chatbot over HTTP",
		Long: `verifier runs four checks against a running chatbot: liveness, a chat
round-trip, the model listing and the UI page.

With a base URL argument it exits 0 only if every check passed.
Without one it asks for the URL and saves the summary to a JSON file;
an empty answer stops without running any check.

Examples:
  verifier https://your-app.up.railway.app
  verifier
  verifier -o results.json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(out, "Sample Chatbot - Deployment Test Script")
			fmt.Fprintln(out, strings.Repeat("=", 45))
			fmt.Fprintln(out)

			if len(args) == 1 {
				return runBatch(cmd.Context(), out, args[0])
			}
			return runInteractive(cmd.Context(), in, out, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "test_results.json", "Summary file written in interactive mode")
	return cmd
}

func runBatch(ctx context.Context, out io.Writer, rawURL string) error {
	baseURL, err := verifier.NormalizeURL(rawURL)
	if err != nil {
		return err
	}
	s := verifier.New(baseURL, out).Run(ctx)
	if !s.AllPassed {
		return errChecksFailed
	}
	return nil
}

func runInteractive(ctx context.Context, in io.Reader, out io.Writer, output string) error {
	fmt.Fprint(out, "Enter your chatbot URL (e.g., https://your-app.up.railway.app): ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read URL: %w", err)
	}
	baseURL, err := verifier.NormalizeURL(line)
	if errors.Is(err, verifier.ErrEmptyURL) {
		fmt.Fprintln(out, "URL is required!")
		return nil
	}
	if err != nil {
		return err
	}

	s := verifier.New(baseURL, out).Run(ctx)
	if err := verifier.WriteSummary(output, s); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nResults saved to: %s\n", output)
	return nil
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
