package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/ytfolder/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// Scopes requested for publishing playlists.
var Scopes = []string{youtube.YoutubeScope}

// CredentialSource produces the OAuth client configuration.
//
// Sources that have nothing to offer return an error wrapping [shared.ErrMissingCredentials].
type CredentialSource interface {
	Name() string
	Config(ctx context.Context, redirectURL string) (*oauth2.Config, error)
}

// FileSource reads a client secret JSON file downloaded from the Google Cloud console.
type FileSource struct {
	Path string
}

func (f FileSource) Name() string { return "client secret file" }

func (f FileSource) Config(_ context.Context, redirectURL string) (*oauth2.Config, error) {
	if f.Path == "" {
		return nil, fmt.Errorf("%w: no client secret path", shared.ErrMissingCredentials)
	}

	path := shared.ExpandPath(f.Path)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", shared.ErrMissingCredentials, path)
		}
		return nil, fmt.Errorf("failed to read client secret: %w", err)
	}

	config, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}
	config.RedirectURL = redirectURL
	return config, nil
}

// EnvSource reads the client ID and secret from the environment.
type EnvSource struct {
	Getenv func(string) string
}

func (e EnvSource) Name() string { return "environment" }

func (e EnvSource) Config(_ context.Context, redirectURL string) (*oauth2.Config, error) {
	getenv := e.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	id, secret := getenv(shared.EnvClientID), getenv(shared.EnvClientSecret)
	if id == "" || secret == "" {
		return nil, fmt.Errorf("%w: %s and %s must both be set", shared.ErrMissingCredentials, shared.EnvClientID, shared.EnvClientSecret)
	}

	return &oauth2.Config{
		ClientID:     id,
		ClientSecret: secret,
		RedirectURL:  redirectURL,
		Scopes:       Scopes,
		Endpoint:     google.Endpoint,
	}, nil
}

// PickerSource asks the user for a client secret file and reads it like [FileSource].
type PickerSource struct {
	Pick func(ctx context.Context) (string, error)
}

func (p PickerSource) Name() string { return "file picker" }

func (p PickerSource) Config(ctx context.Context, redirectURL string) (*oauth2.Config, error) {
	if p.Pick == nil {
		return nil, fmt.Errorf("%w: no picker available", shared.ErrMissingCredentials)
	}

	path, err := p.Pick(ctx)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("%w: no file selected", shared.ErrMissingCredentials)
	}
	return FileSource{Path: path}.Config(ctx, redirectURL)
}

// ChainSource tries each source in order, moving on only when a source is missing credentials.
type ChainSource []CredentialSource

func (c ChainSource) Name() string { return "chain" }

func (c ChainSource) Config(ctx context.Context, redirectURL string) (*oauth2.Config, error) {
	var missing []error
	for _, src := range c {
		config, err := src.Config(ctx, redirectURL)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, shared.ErrMissingCredentials) {
			return nil, fmt.Errorf("%s: %w", src.Name(), err)
		}
		missing = append(missing, err)
	}

	if len(missing) == 0 {
		return nil, fmt.Errorf("%w: no credential sources", shared.ErrMissingCredentials)
	}
	return nil, errors.Join(missing...)
}
