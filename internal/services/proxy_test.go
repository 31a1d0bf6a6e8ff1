package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/ytfolder/internal/shared"
)

func TestProxySearch(t *testing.T) {
	ctx := context.Background()

	t.Run("NewProxySearch", func(t *testing.T) {
		t.Run("defaults", func(t *testing.T) {
			svc := NewProxySearch("", nil, nil)
			if svc.baseURL != defaultProxyURL {
				t.Errorf("expected baseURL %s, got %s", defaultProxyURL, svc.baseURL)
			}
			if svc.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient")
			}
		})

		t.Run("trims trailing slash", func(t *testing.T) {
			if svc := NewProxySearch("http://localhost:9000/", nil, nil); svc.baseURL != "http://localhost:9000" {
				t.Errorf("unexpected baseURL %s", svc.baseURL)
			}
		})
	})

	t.Run("maps results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/search" {
				t.Errorf("expected path /api/search, got %s", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("q") != "Hey Jude The Beatles" || q.Get("filter") != "videos" || q.Get("limit") != "5" {
				t.Errorf("unexpected query %v", q)
			}

			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `[
				{"videoId": "A1", "title": "Hey Jude", "artists": [{"name": "The Beatles", "id": "x"}]},
				{"videoId": "", "title": "Not a video"},
				{"videoId": "B2", "title": "Hey Jude (Live)", "channel": "Beatles Archive"},
				{"videoId": "C3", "title": "Hey Jude cover", "artists": [], "author": "Someone"}
			]`)
		}))
		defer server.Close()

		candidates, err := NewProxySearch(server.URL, nil, nil).Search(ctx, "Hey Jude The Beatles", 5)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(candidates) != 3 {
			t.Fatalf("expected 3 candidates, got %+v", candidates)
		}

		expected := []struct{ title, channel, url string }{
			{"Hey Jude", "The Beatles", "https://www.youtube.com/watch?v=A1"},
			{"Hey Jude (Live)", "Beatles Archive", "https://www.youtube.com/watch?v=B2"},
			{"Hey Jude cover", "Someone", "https://www.youtube.com/watch?v=C3"},
		}
		for i, want := range expected {
			c := candidates[i]
			if c.Title != want.title || c.ChannelName != want.channel || c.URL != want.url {
				t.Errorf("candidate %d: expected %+v, got %+v", i, want, c)
			}
		}
	})

	t.Run("empty array", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `[]`)
		}))
		defer server.Close()

		candidates, err := NewProxySearch(server.URL, nil, nil).Search(ctx, "nothing", 5)
		if err != nil || len(candidates) != 0 {
			t.Errorf("expected no candidates, got %+v (%v)", candidates, err)
		}
	})

	t.Run("errors", func(t *testing.T) {
		tc := []struct {
			name    string
			status  int
			body    string
			message string
		}{
			{name: "detail", status: http.StatusUnauthorized, body: `{"detail": "auth file missing"}`, message: "auth file missing"},
			{name: "bare status", status: http.StatusBadGateway, body: `oops`, message: "status 502"},
			{name: "invalid json", status: http.StatusOK, body: `{not json`, message: "invalid JSON"},
			{name: "not an array", status: http.StatusOK, body: `{"results": []}`, message: "JSON array"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
					io.WriteString(w, tt.body)
				}))
				defer server.Close()

				_, err := NewProxySearch(server.URL, nil, nil).Search(ctx, "q", 5)
				if !errors.Is(err, shared.ErrAPIRequest) {
					t.Fatalf("expected ErrAPIRequest, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.message) {
					t.Errorf("expected %q in error, got %v", tt.message, err)
				}
			})
		}
	})

	t.Run("unreachable proxy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		if _, err := NewProxySearch(url, nil, nil).Search(ctx, "q", 5); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}
