// package models defines the data model for folder to playlist resolution
package models

import (
	"fmt"
	"strings"
)

// SongQuery describes one audio file to resolve.
type SongQuery struct {
	Query   string `json:"query"`          // Query is sent to the search provider and used for scoring
	Display string `json:"display"`        // Display is shown to a human when asked to choose
	Path    string `json:"path,omitempty"` // Path is the source file
}

// Candidate is a single search result for a song query.
type Candidate struct {
	Title       string `json:"title"`
	ChannelName string `json:"channel_name"`
	URL         string `json:"url"`
}

// MatchResult is one successfully resolved song.
type MatchResult struct {
	Query       string `json:"search_query"`
	VideoTitle  string `json:"video_name"`
	ChannelName string `json:"channel_name"`
	URL         string `json:"url"`
}

// NewMatchResult builds the result for query from the chosen candidate.
func NewMatchResult(query string, c Candidate) MatchResult {
	return MatchResult{
		Query:       query,
		VideoTitle:  c.Title,
		ChannelName: c.ChannelName,
		URL:         c.URL,
	}
}

// Mode selects how low-confidence matches are resolved by a human.
type Mode int

const (
	ModePrompt Mode = iota // blocking line input on the terminal
	ModeDialog             // modal dialog rendered as a terminal UI
	ModeNone               // never ask; low-confidence songs are skipped
)

func (m Mode) String() string {
	switch m {
	case ModePrompt:
		return "prompt"
	case ModeDialog:
		return "dialog"
	case ModeNone:
		return "none"
	default:
		return ""
	}
}

// ParseMode parses a --mode flag value.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "prompt", "text", "console":
		return ModePrompt, nil
	case "dialog", "tui", "gui":
		return ModeDialog, nil
	case "none", "headless":
		return ModeNone, nil
	default:
		return ModePrompt, fmt.Errorf("unknown interaction mode %q", s)
	}
}

// Outcome classifies how a single resolution ended.
type Outcome int

const (
	AutoMatched Outcome = iota // best score reached the threshold
	HumanChosen                // a human picked a candidate
	NoResults                  // both searches came back empty
	Skipped                    // a human abstained or gave an invalid choice
)

func (o Outcome) String() string {
	switch o {
	case AutoMatched:
		return "auto_matched"
	case HumanChosen:
		return "human_chosen"
	case NoResults:
		return "no_results"
	case Skipped:
		return "skipped"
	default:
		return ""
	}
}

// Matched reports whether the outcome produced a [MatchResult].
func (o Outcome) Matched() bool {
	return o == AutoMatched || o == HumanChosen
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Entry pairs a scanned song with how its resolution ended.
type Entry struct {
	Song    SongQuery    `json:"song"`
	Outcome Outcome      `json:"outcome"`
	Result  *MatchResult `json:"result,omitempty"`
}

// Report is the outcome of resolving a whole folder.
type Report struct {
	Folder  string  `json:"folder"`
	URL     string  `json:"url,omitempty"`
	Entries []Entry `json:"entries"`
}

// Results returns the matched results in folder order.
func (r Report) Results() []MatchResult {
	results := make([]MatchResult, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.Result != nil {
			results = append(results, *e.Result)
		}
	}
	return results
}

// Count returns how many entries ended with outcome.
func (r Report) Count(outcome Outcome) int {
	n := 0
	for _, e := range r.Entries {
		if e.Outcome == outcome {
			n++
		}
	}
	return n
}
