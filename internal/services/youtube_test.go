package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/ytfolder/internal/shared"
	"google.golang.org/api/option"
)

func TestYouTubeSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("maps video results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasSuffix(r.URL.Path, "/search") {
				t.Errorf("expected search endpoint, got %s", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("q") != "Bohemian Rhapsody official" {
				t.Errorf("unexpected query %q", q.Get("q"))
			}
			if q.Get("type") != "video" || q.Get("maxResults") != "3" || q.Get("part") != "snippet" {
				t.Errorf("unexpected parameters %v", q)
			}
			if q.Get("key") != "test-key" {
				t.Errorf("expected API key, got %q", q.Get("key"))
			}

			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{
				"items": [
					{"id": {"kind": "youtube#video", "videoId": "fJ9rUzIMcZQ"},
					 "snippet": {"title": "Queen &ndash; Bohemian Rhapsody (Official Video)", "channelTitle": "Queen Official"}},
					{"id": {"kind": "youtube#channel", "channelId": "UC123"},
					 "snippet": {"title": "Queen", "channelTitle": "Queen"}},
					{"id": {"kind": "youtube#video", "videoId": "abc"},
					 "snippet": {"title": "Rock &amp; Roll &#39;75", "channelTitle": "Tom &amp; Jerry"}}
				]
			}`)
		}))
		defer server.Close()

		svc, err := NewYouTubeSearch(ctx, "test-key", nil, option.WithEndpoint(server.URL+"/"))
		if err != nil {
			t.Fatalf("failed to create searcher: %v", err)
		}

		candidates, err := svc.Search(ctx, "Bohemian Rhapsody official", 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(candidates) != 2 {
			t.Fatalf("expected 2 video candidates, got %+v", candidates)
		}
		if candidates[0].Title != "Queen – Bohemian Rhapsody (Official Video)" {
			t.Errorf("expected unescaped title, got %q", candidates[0].Title)
		}
		if candidates[0].URL != "https://www.youtube.com/watch?v=fJ9rUzIMcZQ" {
			t.Errorf("unexpected url %q", candidates[0].URL)
		}
		if candidates[1].Title != "Rock & Roll '75" || candidates[1].ChannelName != "Tom & Jerry" {
			t.Errorf("unexpected candidate %+v", candidates[1])
		}
	})

	t.Run("api errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			io.WriteString(w, `{"error": {"code": 403, "message": "quotaExceeded"}}`)
		}))
		defer server.Close()

		svc, err := NewYouTubeSearch(ctx, "test-key", nil, option.WithEndpoint(server.URL+"/"))
		if err != nil {
			t.Fatalf("failed to create searcher: %v", err)
		}

		if _, err := svc.Search(ctx, "anything", 5); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("cancelled context skips the request", func(t *testing.T) {
		var hits int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
		}))
		defer server.Close()

		svc, err := NewYouTubeSearch(ctx, "test-key", NewLimiter(1), option.WithEndpoint(server.URL+"/"))
		if err != nil {
			t.Fatalf("failed to create searcher: %v", err)
		}

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := svc.Search(cctx, "anything", 5); err == nil {
			t.Error("expected error for cancelled context")
		}
		if hits != 0 {
			t.Errorf("expected no requests, got %d", hits)
		}
	})
}

func TestYouTubePublisher(t *testing.T) {
	ctx := context.Background()

	type insert struct {
		path string
		body map[string]any
	}

	newServer := func(t *testing.T, failItem int) (*httptest.Server, *[]insert) {
		var inserts []insert
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}

			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("failed to decode body: %v", err)
			}
			inserts = append(inserts, insert{path: r.URL.Path, body: body})

			w.Header().Set("Content-Type", "application/json")
			switch {
			case strings.HasSuffix(r.URL.Path, "/playlists"):
				if got := r.URL.Query().Get("part"); got != "snippet,status" {
					t.Errorf("expected snippet,status parts, got %q", got)
				}
				io.WriteString(w, `{"id": "PL123"}`)
			case strings.HasSuffix(r.URL.Path, "/playlistItems"):
				if failItem > 0 && len(inserts)-1 == failItem {
					w.WriteHeader(http.StatusNotFound)
					io.WriteString(w, `{"error": {"code": 404, "message": "videoNotFound"}}`)
					return
				}
				io.WriteString(w, `{"id": "item"}`)
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		return server, &inserts
	}

	t.Run("creates playlist then inserts items in order", func(t *testing.T) {
		server, inserts := newServer(t, 0)
		defer server.Close()

		pub, err := NewYouTubePublisher(ctx, option.WithHTTPClient(server.Client()), option.WithEndpoint(server.URL+"/"))
		if err != nil {
			t.Fatalf("failed to create publisher: %v", err)
		}

		playlist, err := pub.Publish(ctx, PublishRequest{
			Title:       "Road trip",
			Description: "Created by ytfolder",
			Privacy:     "unlisted",
			VideoIDs:    []string{"AAA", "BBB"},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if playlist.ID != "PL123" || playlist.Items != 2 || playlist.URL != "https://www.youtube.com/playlist?list=PL123" {
			t.Errorf("unexpected playlist %+v", playlist)
		}

		calls := *inserts
		if len(calls) != 3 {
			t.Fatalf("expected 3 requests, got %d", len(calls))
		}

		snippet := calls[0].body["snippet"].(map[string]any)
		status := calls[0].body["status"].(map[string]any)
		if snippet["title"] != "Road trip" || status["privacyStatus"] != "unlisted" {
			t.Errorf("unexpected playlist body %v", calls[0].body)
		}

		for i, want := range []string{"AAA", "BBB"} {
			item := calls[i+1].body["snippet"].(map[string]any)
			resource := item["resourceId"].(map[string]any)
			if item["playlistId"] != "PL123" || resource["videoId"] != want || resource["kind"] != "youtube#video" {
				t.Errorf("item %d: unexpected body %v", i, calls[i+1].body)
			}
		}
	})

	t.Run("defaults to private", func(t *testing.T) {
		server, inserts := newServer(t, 0)
		defer server.Close()

		pub, _ := NewYouTubePublisher(ctx, option.WithHTTPClient(server.Client()), option.WithEndpoint(server.URL+"/"))
		if _, err := pub.Publish(ctx, PublishRequest{Title: "t"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		status := (*inserts)[0].body["status"].(map[string]any)
		if status["privacyStatus"] != "private" {
			t.Errorf("expected private playlist, got %v", status)
		}
	})

	t.Run("reports partial progress as one error", func(t *testing.T) {
		server, _ := newServer(t, 2)
		defer server.Close()

		pub, _ := NewYouTubePublisher(ctx, option.WithHTTPClient(server.Client()), option.WithEndpoint(server.URL+"/"))
		playlist, err := pub.Publish(ctx, PublishRequest{Title: "t", VideoIDs: []string{"AAA", "BBB", "CCC"}})

		if !errors.Is(err, shared.ErrPublish) {
			t.Fatalf("expected ErrPublish, got %v", err)
		}
		if !strings.Contains(err.Error(), "added 1 of 3") {
			t.Errorf("expected progress in error, got %v", err)
		}
		if playlist == nil || playlist.Items != 1 {
			t.Errorf("expected partial playlist, got %+v", playlist)
		}
	})

	t.Run("playlist creation failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error": {"code": 401, "message": "invalid credentials"}}`)
		}))
		defer server.Close()

		pub, _ := NewYouTubePublisher(ctx, option.WithHTTPClient(server.Client()), option.WithEndpoint(server.URL+"/"))
		playlist, err := pub.Publish(ctx, PublishRequest{Title: "t", VideoIDs: []string{"AAA"}})
		if !errors.Is(err, shared.ErrPublish) || playlist != nil {
			t.Errorf("expected ErrPublish and no playlist, got %+v (%v)", playlist, err)
		}
	})
}
