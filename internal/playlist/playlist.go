// Package playlist assembles resolved songs into a YouTube multi-video playlist URL.
//
// The watch_videos endpoint builds an anonymous playlist from a comma separated list of
// video IDs, so no account is needed to share the result.
package playlist

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytfolder/internal/models"
	"github.com/desertthunder/ytfolder/internal/shared"
)

const WatchVideosURL = "https://www.youtube.com/watch_videos"

// ExtractVideoID returns the video ID of a YouTube URL.
//
// Accepts watch URLs (v parameter), youtu.be short links and /shorts/ or /embed/ paths.
func ExtractVideoID(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}

	if id := u.Query().Get("v"); id != "" {
		return id, true
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case strings.EqualFold(u.Hostname(), "youtu.be") && segments[0] != "":
		return segments[0], true
	case len(segments) == 2 && (segments[0] == "shorts" || segments[0] == "embed") && segments[1] != "":
		return segments[1], true
	}

	return "", false
}

// VideoIDs extracts the video ID of every result in order, skipping (and logging) URLs without one.
func VideoIDs(results []models.MatchResult, logger *log.Logger) []string {
	if logger == nil {
		logger = log.Default()
	}

	ids := make([]string, 0, len(results))
	for _, r := range results {
		id, ok := ExtractVideoID(r.URL)
		if !ok {
			logger.Warn("skipping result without a video id", "query", r.Query, "url", r.URL)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// BuildWatchURL joins the video IDs of results into a watch_videos URL.
//
// Returns [shared.ErrNoPlayableMatches] when no result carries a video ID.
func BuildWatchURL(results []models.MatchResult, logger *log.Logger) (string, error) {
	ids := VideoIDs(results, logger)
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: %d results had no video id", shared.ErrNoPlayableMatches, len(results))
	}
	return WatchURL(ids), nil
}

// WatchURL builds the watch_videos URL for ids. Commas are left unescaped.
func WatchURL(ids []string) string {
	escaped := make([]string, len(ids))
	for i, id := range ids {
		escaped[i] = url.QueryEscape(id)
	}
	return WatchVideosURL + "?video_ids=" + strings.Join(escaped, ",")
}
