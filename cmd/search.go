package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytfolder/internal/matcher"
	"github.com/desertthunder/ytfolder/internal/models"
	"github.com/desertthunder/ytfolder/internal/shared"
	"github.com/urfave/cli/v3"
)

// ScoredCandidate is a search result with its score against the query.
type ScoredCandidate struct {
	models.Candidate
	Score int  `json:"score"`
	Best  bool `json:"best"`
}

// Search runs a single query and shows how each result scores against it.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	limit := config.Search.Limit
	if cmd.IsSet("limit") {
		if limit = int(cmd.Int("limit")); limit <= 0 {
			return fmt.Errorf("%w: limit must be positive", shared.ErrInvalidArgument)
		}
	}

	searcher, err := r.newSearcher(ctx, config, r.logger)
	if err != nil {
		return err
	}

	r.logger.Infof("searching for %q with limit %v", query, limit)

	candidates, err := searcher.Search(ctx, query, limit)
	if err != nil {
		return err
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	titles := make([]string, len(candidates))
	for i, c := range candidates {
		titles[i] = c.Title
	}
	best, _ := matcher.Best(query, titles)
	scores := matcher.Scores(query, titles)

	scored := make([]ScoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = ScoredCandidate{Candidate: c, Score: scores[i], Best: i == best}
	}

	if cmd.Bool("json") {
		return r.writeJSON(scored, cmd.Bool("pretty"))
	}

	if len(scored) == 0 {
		return r.writePlain("No results found for %s\n", query)
	}

	r.writePlain("Found %d results for %q (threshold %d):\n\n", len(scored), query, config.Search.Threshold)
	for i, s := range scored {
		marker := " "
		if s.Best && s.Score >= config.Search.Threshold {
			marker = "✓"
		}
		r.writePlain("%s %d. [%3d] %s (%s)\n", marker, i+1, s.Score, s.Title, s.ChannelName)
		r.writePlain("        %s\n", s.URL)
	}
	return nil
}
