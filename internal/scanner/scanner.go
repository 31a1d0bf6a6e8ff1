// Package scanner turns a folder of audio files into search queries.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytfolder/internal/metadata"
	"github.com/desertthunder/ytfolder/internal/models"
)

// DefaultExtensions are the audio file extensions picked up when none are configured.
var DefaultExtensions = []string{".mp3", ".flac", ".m4a", ".wav"}

// Scanner lists the audio files of a single folder.
type Scanner struct {
	extensions []string
	tags       metadata.TagReader
	logger     *log.Logger
}

// New creates a Scanner. A nil reader disables tag lookups and empty extensions select [DefaultExtensions].
func New(reader metadata.TagReader, extensions []string, logger *log.Logger) *Scanner {
	if reader == nil {
		reader = metadata.Nop{}
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if logger == nil {
		logger = log.Default()
	}

	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}

	return &Scanner{extensions: normalized, tags: reader, logger: logger}
}

// Scan returns one [models.SongQuery] per audio file directly inside dir, in directory listing order.
//
// A missing folder is logged and yields no songs rather than an error.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]models.SongQuery, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("folder not found", "folder", dir)
			return []models.SongQuery{}, nil
		}
		return nil, fmt.Errorf("failed to read folder %s: %w", dir, err)
	}

	songs := make([]models.SongQuery, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return songs, err
		}

		if entry.IsDir() || !s.isAudio(entry.Name()) {
			continue
		}

		songs = append(songs, s.query(filepath.Join(dir, entry.Name())))
	}

	s.logger.Debug("scanned folder", "folder", dir, "entries", len(entries), "songs", len(songs))
	return songs, nil
}

func (s *Scanner) isAudio(name string) bool {
	return slices.Contains(s.extensions, strings.ToLower(filepath.Ext(name)))
}

// query builds the search query for path, preferring embedded tags over the file name.
func (s *Scanner) query(path string) models.SongQuery {
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	song := models.SongQuery{Query: stem, Display: stem, Path: path}

	tags, err := s.tags.ReadTags(path)
	if err != nil {
		s.logger.Debug("no usable tags", "file", name, "error", err)
		return song
	}
	if tags.Empty() {
		return song
	}

	song.Query, song.Display = tags.Title, tags.Title
	if tags.Artist != "" {
		song.Query = tags.Title + " " + tags.Artist
		song.Display = tags.Title + " - " + tags.Artist
	}
	return song
}
