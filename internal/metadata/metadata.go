// Package metadata reads song title and artist tags from audio files.
//
// [Reader] dispatches by extension: ID3v2 frames for .mp3, Vorbis comments for .flac, and
// [github.com/dhowden/tag] for everything else or when the format specific read finds nothing.
package metadata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// ErrNoTags is returned when a file carries no usable title.
var ErrNoTags = errors.New("no tags found")

// Tags is the subset of audio metadata used to build a search query.
type Tags struct {
	Title  string
	Artist string
}

// Empty reports whether no title was found.
func (t Tags) Empty() bool {
	return t.Title == ""
}

// TagReader reads [Tags] from an audio file.
type TagReader interface {
	ReadTags(path string) (Tags, error)
}

// Reader is the file based [TagReader].
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadTags reads the title and artist of the file at path.
//
// Returns [ErrNoTags] (possibly wrapped) when no reader finds a title.
func (r *Reader) ReadTags(path string) (Tags, error) {
	var (
		tags Tags
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		tags, err = readID3v2(path)
	case ".flac":
		tags, err = readVorbis(path)
	}

	if err == nil && !tags.Empty() {
		return tags, nil
	}

	generic, gerr := readGeneric(path)
	if gerr != nil {
		if err != nil {
			return Tags{}, errors.Join(err, gerr)
		}
		return Tags{}, gerr
	}
	return generic, nil
}

func readID3v2(path string) (Tags, error) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Title", "Artist"}})
	if err != nil {
		return Tags{}, fmt.Errorf("id3v2: %w", err)
	}
	defer t.Close()

	return clean(t.Title(), t.Artist()), nil
}

func readVorbis(path string) (Tags, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return Tags{}, fmt.Errorf("flac: %w", err)
	}

	for _, block := range f.Meta {
		if block.Type != flac.VorbisComment {
			continue
		}

		cmt, err := flacvorbis.ParseFromMetaDataBlock(*block)
		if err != nil {
			return Tags{}, fmt.Errorf("flac: vorbis comment: %w", err)
		}
		return clean(first(cmt, flacvorbis.FIELD_TITLE), first(cmt, flacvorbis.FIELD_ARTIST)), nil
	}

	return Tags{}, nil
}

func first(cmt *flacvorbis.MetaDataBlockVorbisComment, field string) string {
	values, err := cmt.Get(field)
	if err != nil || len(values) == 0 {
		return ""
	}
	return values[0]
}

func readGeneric(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return Tags{}, ErrNoTags
		}
		return Tags{}, fmt.Errorf("%w: %v", ErrNoTags, err)
	}

	tags := clean(m.Title(), m.Artist())
	if tags.Empty() {
		return Tags{}, ErrNoTags
	}
	return tags, nil
}

// clean trims whitespace and the NUL padding some taggers leave behind.
func clean(title, artist string) Tags {
	trim := func(s string) string {
		return strings.TrimSpace(strings.Trim(s, "\x00"))
	}
	return Tags{Title: trim(title), Artist: trim(artist)}
}

// Nop never finds any tags. Used when tag reading is disabled.
type Nop struct{}

func (Nop) ReadTags(string) (Tags, error) { return Tags{}, nil }
