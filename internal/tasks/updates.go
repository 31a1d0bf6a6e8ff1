package tasks

import (
	"fmt"

	"github.com/desertthunder/ytfolder/internal/models"
	"github.com/desertthunder/ytfolder/internal/services"
)

// ProgressUpdate represents a progress event during a run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Reporter receives progress updates. It is called synchronously, so a slow reporter slows the run.
type Reporter func(ProgressUpdate)

// Operation phase enumeration
type Phase int

const (
	Scan Phase = iota
	Resolve
	Assemble
	Publish
	Export
)

func (p Phase) String() string {
	switch p {
	case Scan:
		return "scan"
	case Resolve:
		return "resolve"
	case Assemble:
		return "assemble"
	case Publish:
		return "publish"
	case Export:
		return "export"
	default:
		return ""
	}
}

func scanningUpdate(folder string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Scan,
		Step:    0,
		Total:   1,
		Message: fmt.Sprintf("Scanning folder: %s", folder),
	}
}

func foundSongUpdate(step, total int, song models.SongQuery) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Scan,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("  Found: %s", song.Display),
		Data:    song,
	}
}

func searchingUpdate(step, total int, song models.SongQuery) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Resolve,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Searching for: %s...", song.Display),
		Data:    song,
	}
}

func resolvedUpdate(step, total int, entry models.Entry) ProgressUpdate {
	var msg string
	switch entry.Outcome {
	case models.NoResults:
		msg = fmt.Sprintf("No results found for %s", entry.Song.Display)
	case models.Skipped:
		msg = fmt.Sprintf("  Skipped: %s", entry.Song.Display)
	default:
		msg = fmt.Sprintf("  Matched: %s (%s)", entry.Result.VideoTitle, entry.Result.ChannelName)
	}
	return ProgressUpdate{
		Phase:   Resolve,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    entry,
	}
}

func assembledUpdate(ids []string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Assemble,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Assembled playlist of %d videos", len(ids)),
		Data:    ids,
	}
}

func publishingUpdate(title string, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Publish,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Creating playlist %q on YouTube...", title),
	}
}

func publishedUpdate(pl *services.PublishedPlaylist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Publish,
		Step:    pl.Items,
		Total:   pl.Items,
		Message: fmt.Sprintf("Playlist created: %s (ID: %s)", pl.Title, pl.ID),
		Data:    pl,
	}
}

func exportedUpdate(path string, entries int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Export,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Exported %d songs to %s", entries, path),
		Data:    path,
	}
}
