// YouTube Data API v3 search and publishing
package services

import (
	"context"
	"fmt"
	"html"

	"github.com/desertthunder/ytfolder/internal/models"
	"github.com/desertthunder/ytfolder/internal/shared"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	defaultPrivacy = "private"
	videoKind      = "youtube#video"
)

// YouTubeSearch implements [matcher.Searcher] with the search.list endpoint.
type YouTubeSearch struct {
	svc     *youtube.Service
	limiter *rate.Limiter
}

// NewYouTubeSearch creates a searcher authenticated with apiKey. Extra options are applied after the key.
func NewYouTubeSearch(ctx context.Context, apiKey string, limiter *rate.Limiter, opts ...option.ClientOption) (*YouTubeSearch, error) {
	if limiter == nil {
		limiter = NewLimiter(0)
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube client: %w", err)
	}

	return &YouTubeSearch{svc: svc, limiter: limiter}, nil
}

// Search returns up to limit videos for query. Titles are HTML-unescaped.
func (y *YouTubeSearch) Search(ctx context.Context, query string, limit int) ([]models.Candidate, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := y.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: youtube search: %v", shared.ErrAPIRequest, err)
	}

	candidates := make([]models.Candidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}

		candidates = append(candidates, models.Candidate{
			Title:       html.UnescapeString(item.Snippet.Title),
			ChannelName: html.UnescapeString(item.Snippet.ChannelTitle),
			URL:         WatchURL(item.Id.VideoId),
		})
	}

	return candidates, nil
}

// YouTubePublisher implements [Publisher] on an OAuth authenticated client.
type YouTubePublisher struct {
	svc *youtube.Service
}

// NewYouTubePublisher creates a publisher. Pass option.WithHTTPClient with an OAuth client.
func NewYouTubePublisher(ctx context.Context, opts ...option.ClientOption) (*YouTubePublisher, error) {
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube client: %w", err)
	}
	return &YouTubePublisher{svc: svc}, nil
}

// Publish creates the playlist and appends every video in order.
//
// When an insert fails the partially filled playlist is returned together with the error.
func (p *YouTubePublisher) Publish(ctx context.Context, req PublishRequest) (*PublishedPlaylist, error) {
	privacy := req.Privacy
	if privacy == "" {
		privacy = defaultPrivacy
	}

	created, err := p.svc.Playlists.Insert([]string{"snippet", "status"}, &youtube.Playlist{
		Snippet: &youtube.PlaylistSnippet{
			Title:       req.Title,
			Description: req.Description,
		},
		Status: &youtube.PlaylistStatus{PrivacyStatus: privacy},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create playlist %q: %v", shared.ErrPublish, req.Title, err)
	}

	published := &PublishedPlaylist{
		ID:    created.Id,
		Title: req.Title,
		URL:   PlaylistURL(created.Id),
	}

	for _, id := range req.VideoIDs {
		item := &youtube.PlaylistItem{
			Snippet: &youtube.PlaylistItemSnippet{
				PlaylistId: created.Id,
				ResourceId: &youtube.ResourceId{Kind: videoKind, VideoId: id},
			},
		}

		if _, err := p.svc.PlaylistItems.Insert([]string{"snippet"}, item).Context(ctx).Do(); err != nil {
			return published, fmt.Errorf("%w: added %d of %d videos to %s before %s failed: %v",
				shared.ErrPublish, published.Items, len(req.VideoIDs), created.Id, id, err)
		}
		published.Items++
	}

	return published, nil
}
