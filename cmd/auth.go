package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytfolder/internal/server"
	"github.com/desertthunder/ytfolder/internal/services"
	"github.com/desertthunder/ytfolder/internal/shared"
	"github.com/desertthunder/ytfolder/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

const authTimeout = 2 * time.Minute

// Auth performs the OAuth2 installed application flow and saves the token for later publishing.
//
// Starts a local HTTP server, opens the browser for consent and exchanges the code for a token.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if path := cmd.String("client-secret"); path != "" {
		config.Credentials.YouTube.ClientSecretPath = path
	}

	oauthConfig, err := r.credentials(config).Config(ctx, config.Server.RedirectURL())
	if err != nil {
		return err
	}

	token, err := r.doOAuth(ctx, config, services.NewYouTubeAuth(oauthConfig), "authorization")
	if err != nil {
		return err
	}

	tokenPath := config.Credentials.YouTube.TokenPath
	if err := shared.SaveToken(tokenPath, token); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Token saved to %s\n\n", shared.ExpandPath(tokenPath))
	r.writePlain("You can now use: ytfolder run <folder> --publish\n")
	return nil
}

// credentials lists where OAuth client credentials may come from, most specific first.
func (r *Runner) credentials(config *shared.Config) services.ChainSource {
	chain := services.ChainSource{
		services.FileSource{Path: config.Credentials.YouTube.ClientSecretPath},
		services.EnvSource{},
	}
	if r.interactive {
		chain = append(chain, services.PickerSource{
			Pick: func(ctx context.Context) (string, error) {
				r.writePlain("→ Select your OAuth client secret JSON file\n")
				return ui.PickFile(ctx, nil, nil, ".")
			},
		})
	}
	return chain
}

// newPublisher returns the injected publisher or an authorized YouTube publisher.
//
// A missing token starts the OAuth flow; the new token is saved for next time.
func (r *Runner) newPublisher(ctx context.Context, config *shared.Config, logger *log.Logger) (services.Publisher, error) {
	if r.publisher != nil {
		return r.publisher, nil
	}

	oauthConfig, err := r.credentials(config).Config(ctx, config.Server.RedirectURL())
	if err != nil {
		return nil, err
	}
	auth := services.NewYouTubeAuth(oauthConfig)

	tokenPath := config.Credentials.YouTube.TokenPath
	token, err := shared.LoadToken(tokenPath)
	if errors.Is(err, shared.ErrNotAuthenticated) {
		if !r.interactive {
			return nil, fmt.Errorf("%w: run 'ytfolder auth' first", err)
		}
		if token, err = r.doOAuth(ctx, config, auth, "publishing"); err != nil {
			return nil, err
		}
		if err := shared.SaveToken(tokenPath, token); err != nil {
			logger.Warn("failed to save token", "path", tokenPath, "error", err)
		}
	} else if err != nil {
		return nil, err
	}

	client := auth.Client(ctx, token, tokenPath, logger)
	return services.NewYouTubePublisher(ctx, option.WithHTTPClient(client))
}

// doOAuth runs the loopback consent flow and returns the exchanged token.
func (r *Runner) doOAuth(ctx context.Context, config *shared.Config, auth *services.YouTubeAuth, prefix string) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	oauthHandler := server.NewOAuthHandler(auth, state)
	router := server.NewBasicRouter()
	router.Use(server.Recover(r.logger), server.Logging(r.logger))
	router.Handler(oauthHandler)

	serverAddr := config.Server.Addr()
	r.logger.Infof("starting OAuth server for %s at %v", prefix, serverAddr)
	callback := server.StartCallback(serverAddr, router)
	defer func() {
		if err := callback.Shutdown(); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}()

	authURL := auth.AuthURL(state)
	r.writePlain("→ Opening browser for YouTube %s...\n", prefix)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
	case err, ok := <-callback.Errors():
		if ok {
			return nil, fmt.Errorf("server error: %w", err)
		}
		return nil, fmt.Errorf("%w: callback server stopped", shared.ErrAuthFailed)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}
	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}
