package tasks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytfolder/internal/models"
	"github.com/desertthunder/ytfolder/internal/playlist"
	"github.com/desertthunder/ytfolder/internal/services"
	"github.com/desertthunder/ytfolder/internal/shared"
)

// SongScanner lists the songs in a folder.
type SongScanner interface {
	Scan(ctx context.Context, dir string) ([]models.SongQuery, error)
}

// SongResolver selects a video for a single song.
type SongResolver interface {
	Resolve(ctx context.Context, song models.SongQuery) (*models.MatchResult, models.Outcome)
}

// RunResult contains all data from a folder run.
type RunResult struct {
	Report   models.Report // Per-song entries plus the assembled URL
	VideoIDs []string      // Video IDs in playlist order
}

// Results returns the matched results in folder order.
func (r *RunResult) Results() []models.MatchResult {
	return r.Report.Results()
}

// URL returns the assembled watch_videos URL, empty when nothing was playable.
func (r *RunResult) URL() string {
	return r.Report.URL
}

// Engine runs the scan, resolve and assemble pipeline.
type Engine struct {
	scanner   SongScanner
	resolver  SongResolver
	publisher services.Publisher
	logger    *log.Logger
	report    Reporter
}

// EngineOpts configures an [Engine]. Publisher, Logger and Reporter are optional.
type EngineOpts struct {
	Scanner   SongScanner
	Resolver  SongResolver
	Publisher services.Publisher
	Logger    *log.Logger
	Reporter  Reporter
}

// NewEngine creates an Engine from opts.
func NewEngine(opts EngineOpts) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	publisher := opts.Publisher
	if publisher == nil {
		publisher = services.NopPublisher{Reason: "no publisher configured"}
	}
	return &Engine{
		scanner:   opts.Scanner,
		resolver:  opts.Resolver,
		publisher: publisher,
		logger:    logger,
		report:    opts.Reporter,
	}
}

// sendProgress hands update to the reporter, if any.
func (e *Engine) sendProgress(update ProgressUpdate) {
	if e.report == nil {
		return
	}
	e.report(update)
}

// Run scans folder, resolves every song in order and assembles the playlist URL.
//
// A missing folder returns [shared.ErrFolderNotFound] and a folder without audio returns [shared.ErrNoSongs],
// both with a nil result. When songs were resolved but none is playable the result is returned alongside
// [shared.ErrNoPlayableMatches]. Cancellation stops between songs and returns ctx.Err() with the partial
// result, its URL assembled from the songs matched so far.
func (e *Engine) Run(ctx context.Context, folder string) (*RunResult, error) {
	if e.scanner == nil || e.resolver == nil {
		return nil, fmt.Errorf("%w: engine needs a scanner and a resolver", shared.ErrServiceUnavailable)
	}

	e.sendProgress(scanningUpdate(folder))

	songs, err := e.scanner.Scan(ctx, folder)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		if _, statErr := os.Stat(folder); errors.Is(statErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", shared.ErrFolderNotFound, folder)
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrNoSongs, folder)
	}

	total := len(songs)
	for i, song := range songs {
		e.sendProgress(foundSongUpdate(i+1, total, song))
	}

	result := &RunResult{
		Report: models.Report{
			Folder:  folder,
			Entries: make([]models.Entry, 0, total),
		},
	}

	for i, song := range songs {
		if ctx.Err() != nil {
			break
		}

		e.sendProgress(searchingUpdate(i+1, total, song))

		match, outcome := e.resolver.Resolve(ctx, song)
		entry := models.Entry{Song: song, Outcome: outcome, Result: match}

		result.Report.Entries = append(result.Report.Entries, entry)
		e.sendProgress(resolvedUpdate(i+1, total, entry))
	}

	e.logger.Info("resolved folder",
		"folder", folder,
		"songs", total,
		"resolved", len(result.Report.Entries),
		"auto", result.Report.Count(models.AutoMatched),
		"chosen", result.Report.Count(models.HumanChosen),
		"no_results", result.Report.Count(models.NoResults),
		"skipped", result.Report.Count(models.Skipped),
	)

	ids := playlist.VideoIDs(result.Results(), e.logger)
	if len(ids) > 0 {
		result.VideoIDs = ids
		result.Report.URL = playlist.WatchURL(ids)
	}

	if err := ctx.Err(); err != nil {
		e.logger.Warn("run cancelled", "resolved", len(result.Report.Entries), "songs", total, "videos", len(ids))
		return result, err
	}
	if len(ids) == 0 {
		return result, fmt.Errorf("%w: none of %d songs matched a video", shared.ErrNoPlayableMatches, total)
	}

	e.sendProgress(assembledUpdate(ids))
	return result, nil
}

// Publish creates the run's playlist on the user's account.
//
// VideoIDs in req are replaced by the run's IDs. A partially created playlist is returned together with the error.
func (e *Engine) Publish(ctx context.Context, result *RunResult, req services.PublishRequest) (*services.PublishedPlaylist, error) {
	if result == nil || len(result.VideoIDs) == 0 {
		return nil, fmt.Errorf("%w: nothing to publish", shared.ErrNoPlayableMatches)
	}

	req.VideoIDs = result.VideoIDs
	e.sendProgress(publishingUpdate(req.Title, len(req.VideoIDs)))

	pl, err := e.publisher.Publish(ctx, req)
	if err != nil {
		e.logger.Error("publish failed", "title", req.Title, "error", err)
		return pl, err
	}

	e.logger.Info("published playlist", "id", pl.ID, "items", pl.Items)
	e.sendProgress(publishedUpdate(pl))
	return pl, nil
}
