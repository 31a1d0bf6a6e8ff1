package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytfolder/internal/matcher"
	"github.com/desertthunder/ytfolder/internal/models"
	"github.com/desertthunder/ytfolder/internal/shared"
	"golang.org/x/time/rate"
)

const (
	watchURL    = "https://www.youtube.com/watch?v="
	playlistURL = "https://www.youtube.com/playlist?list="
)

var (
	_ matcher.Searcher = (*YouTubeSearch)(nil)
	_ matcher.Searcher = (*ProxySearch)(nil)
	_ matcher.Searcher = Unavailable{}
)

// Publisher creates a playlist on a user's account.
type Publisher interface {
	Publish(ctx context.Context, req PublishRequest) (*PublishedPlaylist, error)
}

// PublishRequest describes the playlist to create.
type PublishRequest struct {
	Title       string
	Description string
	Privacy     string // private, unlisted or public
	VideoIDs    []string
}

// PublishedPlaylist is a playlist created by a [Publisher].
type PublishedPlaylist struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Items int    `json:"items"`
}

// WatchURL returns the watch page URL for a video ID.
func WatchURL(videoID string) string {
	return watchURL + videoID
}

// PlaylistURL returns the playlist page URL for a playlist ID.
func PlaylistURL(playlistID string) string {
	return playlistURL + playlistID
}

// NewLimiter creates the request limiter shared by search providers. Non-positive rates disable limiting.
func NewLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

// NewSearcher builds the search provider selected by cfg.
//
// The youtube provider needs an API key; without one an [Unavailable] searcher is returned
// along with a warning so the run still completes with every song unmatched.
func NewSearcher(ctx context.Context, cfg shared.SearchConfig, client *http.Client, logger *log.Logger) (matcher.Searcher, error) {
	limiter := NewLimiter(cfg.RequestsPerSecond)

	switch cfg.Provider {
	case shared.ProviderProxy:
		return NewProxySearch(cfg.ProxyURL, client, limiter), nil
	case shared.ProviderYouTube, "":
		if cfg.APIKey == "" {
			logger.Warn("no YouTube API key configured, searches will fail", "env", shared.EnvAPIKey)
			return Unavailable{Reason: "missing YouTube API key"}, nil
		}
		return NewYouTubeSearch(ctx, cfg.APIKey, limiter)
	default:
		return nil, fmt.Errorf("%w: unknown search provider %q", shared.ErrInvalidConfig, cfg.Provider)
	}
}

// Unavailable fails every search with [shared.ErrServiceUnavailable].
type Unavailable struct {
	Reason string
}

func (u Unavailable) Search(context.Context, string, int) ([]models.Candidate, error) {
	return nil, fmt.Errorf("%w: %s", shared.ErrServiceUnavailable, u.Reason)
}

// NopPublisher fails every publish. Used when no OAuth credentials are available.
type NopPublisher struct {
	Reason string
}

func (n NopPublisher) Publish(context.Context, PublishRequest) (*PublishedPlaylist, error) {
	return nil, fmt.Errorf("%w: %w: %s", shared.ErrPublish, shared.ErrServiceUnavailable, n.Reason)
}
