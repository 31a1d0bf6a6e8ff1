package services

import (
	"context"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytfolder/internal/shared"
	"golang.org/x/oauth2"
)

// YouTubeAuth runs the installed application OAuth flow with a PKCE verifier.
type YouTubeAuth struct {
	config   *oauth2.Config
	verifier string
}

// NewYouTubeAuth creates a flow for config with a fresh PKCE verifier.
func NewYouTubeAuth(config *oauth2.Config) *YouTubeAuth {
	return &YouTubeAuth{config: config, verifier: oauth2.GenerateVerifier()}
}

// Config returns the underlying OAuth2 configuration.
func (a *YouTubeAuth) Config() *oauth2.Config {
	return a.config
}

// AuthURL returns the consent page URL, requesting a refresh token.
func (a *YouTubeAuth) AuthURL(state string) string {
	return a.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(a.verifier))
}

// Exchange trades an authorization code for a token.
func (a *YouTubeAuth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return a.config.Exchange(ctx, code, oauth2.VerifierOption(a.verifier))
}

// Client returns an HTTP client that refreshes token as needed.
//
// Refreshed tokens are saved to tokenPath; save failures are only logged.
func (a *YouTubeAuth) Client(ctx context.Context, token *oauth2.Token, tokenPath string, logger *log.Logger) *http.Client {
	src := &savingTokenSource{
		src:    a.config.TokenSource(ctx, token),
		path:   tokenPath,
		last:   token.AccessToken,
		logger: logger,
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(token, src))
}

// savingTokenSource persists every new access token it sees.
type savingTokenSource struct {
	src    oauth2.TokenSource
	path   string
	logger *log.Logger

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token.AccessToken == s.last || s.path == "" {
		return token, nil
	}
	s.last = token.AccessToken

	if err := shared.SaveToken(s.path, token); err != nil && s.logger != nil {
		s.logger.Warn("failed to save refreshed token", "path", s.path, "error", err)
	}
	return token, nil
}
