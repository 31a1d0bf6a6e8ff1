package matcher

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytfolder/internal/models"
)

const (
	DefaultThreshold      = 80
	DefaultLimit          = 5
	DefaultOfficialSuffix = "official"
)

// Searcher issues a text query against a video search provider.
//
// Results keep the provider's own relevance order.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.Candidate, error)
}

// ChoiceRequest is what a human sees when no candidate was confident enough.
type ChoiceRequest struct {
	Display    string             // Display name of the song
	Query      string             // Query that produced the candidates
	BestScore  int                // Best score among Candidates
	Threshold  int                // Score needed for an automatic match
	Candidates []models.Candidate // Candidates in provider order
	Scores     []int              // Scores[i] is the score of Candidates[i]
}

// Chooser asks a human to pick one of the candidates.
//
// Returns a 1-based index into req.Candidates, or false to skip the song.
type Chooser interface {
	Choose(ctx context.Context, req ChoiceRequest) (int, bool)
}

// ChooserFunc adapts a function to the [Chooser] interface.
type ChooserFunc func(ctx context.Context, req ChoiceRequest) (int, bool)

func (f ChooserFunc) Choose(ctx context.Context, req ChoiceRequest) (int, bool) {
	return f(ctx, req)
}

// SkipChooser abstains on every request.
type SkipChooser struct{}

func (SkipChooser) Choose(context.Context, ChoiceRequest) (int, bool) { return 0, false }

// Options configures a [Resolver]. Zero values select the defaults.
type Options struct {
	Threshold      int
	Limit          int
	OfficialSuffix string
	Logger         *log.Logger
}

// Resolver turns one [models.SongQuery] into zero or one [models.MatchResult].
type Resolver struct {
	searcher  Searcher
	chooser   Chooser
	threshold int
	limit     int
	suffix    string
	logger    *log.Logger
}

// NewResolver creates a Resolver. A nil chooser skips every low-confidence song.
func NewResolver(searcher Searcher, chooser Chooser, opts Options) *Resolver {
	if chooser == nil {
		chooser = SkipChooser{}
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.OfficialSuffix == "" {
		opts.OfficialSuffix = DefaultOfficialSuffix
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Resolver{
		searcher:  searcher,
		chooser:   chooser,
		threshold: opts.Threshold,
		limit:     opts.Limit,
		suffix:    opts.OfficialSuffix,
		logger:    opts.Logger,
	}
}

// attempt is one search and its scoring.
type attempt struct {
	query      string
	candidates []models.Candidate
	scores     []int
	best       int
	score      int
}

// Resolve searches for song and selects a candidate, asking the chooser when no candidate reaches the threshold.
func (r *Resolver) Resolve(ctx context.Context, song models.SongQuery) (*models.MatchResult, models.Outcome) {
	logger := r.logger.With("song", song.Display)

	official := r.search(ctx, logger, song.Query, strings.TrimSpace(song.Query+" "+r.suffix))
	if official.best >= 0 && official.score >= r.threshold {
		return r.accept(logger, song, official, models.AutoMatched)
	}

	plain := r.search(ctx, logger, song.Query, song.Query)
	if plain.best >= 0 && plain.score >= r.threshold {
		return r.accept(logger, song, plain, models.AutoMatched)
	}

	offered := plain
	if len(offered.candidates) == 0 {
		offered = official
	}

	if len(offered.candidates) == 0 {
		logger.Warn("no results found")
		return nil, models.NoResults
	}

	logger.Info("low confidence, asking for a choice", "best_score", offered.score)

	choice, ok := r.chooser.Choose(ctx, ChoiceRequest{
		Display:    song.Display,
		Query:      offered.query,
		BestScore:  offered.score,
		Threshold:  r.threshold,
		Candidates: offered.candidates,
		Scores:     offered.scores,
	})
	if !ok || choice < 1 || choice > len(offered.candidates) {
		logger.Info("skipped")
		return nil, models.Skipped
	}

	offered.best = choice - 1
	return r.accept(logger, song, offered, models.HumanChosen)
}

// search runs one query and scores the candidates against scoreAgainst.
func (r *Resolver) search(ctx context.Context, logger *log.Logger, scoreAgainst, query string) attempt {
	a := attempt{query: query, best: -1}

	candidates, err := r.searcher.Search(ctx, query, r.limit)
	if err != nil {
		logger.Error("search failed", "query", query, "error", err)
		return a
	}

	if len(candidates) > r.limit {
		candidates = candidates[:r.limit]
	}

	titles := make([]string, len(candidates))
	for i, c := range candidates {
		titles[i] = c.Title
	}

	a.candidates = candidates
	a.scores = Scores(scoreAgainst, titles)
	a.best, a.score = highest(a.scores)

	logger.Debug("searched", "query", query, "results", len(candidates), "best_score", a.score)
	return a
}

func (r *Resolver) accept(logger *log.Logger, song models.SongQuery, a attempt, outcome models.Outcome) (*models.MatchResult, models.Outcome) {
	chosen := a.candidates[a.best]
	logger.Info("matched", "title", chosen.Title, "channel", chosen.ChannelName, "score", a.scores[a.best], "outcome", outcome)

	result := models.NewMatchResult(song.Query, chosen)
	return &result, outcome
}
