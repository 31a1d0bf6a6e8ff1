package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/desertthunder/ytfolder/internal/shared"
	tu "github.com/desertthunder/ytfolder/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestSearch(t *testing.T) {
	t.Run("plain output marks the auto-selected result", func(t *testing.T) {
		h := newHarness("")

		if err := h.run("search", "Bohemian Rhapsody official"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := h.output.String()
		if !strings.Contains(out, `Found 1 results for "Bohemian Rhapsody official" (threshold 80)`) {
			t.Errorf("unexpected header:\n%s", out)
		}
		if !strings.Contains(out, "Queen – Bohemian Rhapsody (Queen Official)") {
			t.Errorf("expected candidate line:\n%s", out)
		}
		if !strings.Contains(out, "https://www.youtube.com/watch?v=fJ9rUzIMcZQ") {
			t.Errorf("expected url line:\n%s", out)
		}
	})

	t.Run("json output carries scores", func(t *testing.T) {
		h := newHarness("")

		if err := h.run("search", "--json", "--limit", "1", "Obscure Track"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var scored []ScoredCandidate
		if err := json.Unmarshal(h.output.Bytes(), &scored); err != nil {
			t.Fatalf("invalid JSON %q: %v", h.output.String(), err)
		}
		if len(scored) != 1 {
			t.Fatalf("expected limit to truncate to 1 result, got %d", len(scored))
		}
		if scored[0].Title != "Weekly news roundup" || !scored[0].Best || scored[0].Score >= 80 {
			t.Errorf("unexpected candidate %+v", scored[0])
		}
		if h.searcher.Calls[0].Limit != 1 {
			t.Errorf("expected limit 1 to reach the searcher, got %d", h.searcher.Calls[0].Limit)
		}
	})

	t.Run("no results", func(t *testing.T) {
		h := newHarness("")

		if err := h.run("search", "nothing here"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.output.String(), "No results found for nothing here") {
			t.Errorf("unexpected output %q", h.output.String())
		}
	})

	t.Run("argument errors", func(t *testing.T) {
		h := newHarness("")
		if err := h.run("search"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if err := h.run("search", "--limit", "0", "q"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("search errors are returned", func(t *testing.T) {
		h := newHarness("")
		h.searcher.Errors = map[string]error{"q": shared.ErrServiceUnavailable}

		if err := h.run("search", "q"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("proxy provider goes through the runner's http client", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Search.Provider = shared.ProviderProxy
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
		r := NewRunner(RunnerOpts{
			Config:     config,
			HTTPClient: client,
			Logger:     shared.NewLogger(&bytes.Buffer{}),
			Output:     &bytes.Buffer{},
		})

		app := &cli.Command{Name: "ytfolder", Commands: r.register()}
		err := app.Run(t.Context(), []string{"ytfolder", "search", "q"})
		if !errors.Is(err, shared.ErrAPIRequest) || !strings.Contains(err.Error(), "connection refused") {
			t.Errorf("expected transport error wrapped in ErrAPIRequest, got %v", err)
		}
	})
}
