// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/ytfolder/internal/matcher"
	"github.com/desertthunder/ytfolder/internal/metadata"
	"github.com/desertthunder/ytfolder/internal/models"
	"github.com/desertthunder/ytfolder/internal/services"
)

// SearchCall records a single call to [MockSearcher.Search].
type SearchCall struct {
	Query string
	Limit int
}

// MockSearcher is a test double for matcher.Searcher.
//
// Results are looked up by exact query; Errors take precedence.
type MockSearcher struct {
	Results map[string][]models.Candidate
	Errors  map[string]error
	Calls   []SearchCall
}

func (m *MockSearcher) Search(ctx context.Context, query string, limit int) ([]models.Candidate, error) {
	m.Calls = append(m.Calls, SearchCall{Query: query, Limit: limit})
	if err, ok := m.Errors[query]; ok {
		return nil, err
	}
	return m.Results[query], nil
}

// Queries returns the queries searched so far, in order.
func (m *MockSearcher) Queries() []string {
	queries := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		queries[i] = c.Query
	}
	return queries
}

// MockChooser answers every request with Index/OK and records the requests.
type MockChooser struct {
	Index    int
	OK       bool
	Requests []matcher.ChoiceRequest
}

func (m *MockChooser) Choose(ctx context.Context, req matcher.ChoiceRequest) (int, bool) {
	m.Requests = append(m.Requests, req)
	return m.Index, m.OK
}

// MockTagReader returns fixed tags per path.
type MockTagReader struct {
	Tags  map[string]metadata.Tags
	Err   error
	Reads []string
}

func (m *MockTagReader) ReadTags(path string) (metadata.Tags, error) {
	m.Reads = append(m.Reads, path)
	if m.Err != nil {
		return metadata.Tags{}, m.Err
	}
	return m.Tags[path], nil
}

// MockPublisher records published playlists.
type MockPublisher struct {
	Title    string
	VideoIDs []string
	Calls    int
	Err      error
}

func (m *MockPublisher) Publish(ctx context.Context, req services.PublishRequest) (*services.PublishedPlaylist, error) {
	m.Calls++
	m.Title = req.Title
	m.VideoIDs = req.VideoIDs
	if m.Err != nil {
		return nil, m.Err
	}
	return &services.PublishedPlaylist{
		ID:    "PLmock",
		Title: req.Title,
		URL:   "https://www.youtube.com/playlist?list=PLmock",
		Items: len(req.VideoIDs),
	}, nil
}

// MockClipboard captures copied text.
type MockClipboard struct {
	Text string
	Err  error
}

func (m *MockClipboard) WriteAll(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// Watch builds a YouTube watch URL for a video ID.
func Watch(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// Candidate builds a [models.Candidate] with a watch URL.
func Candidate(title, channel, id string) models.Candidate {
	return models.Candidate{Title: title, ChannelName: channel, URL: Watch(id)}
}

// TouchFiles creates empty files with the given names in dir.
func TouchFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(dir+string(os.PathSeparator)+name, nil, 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
