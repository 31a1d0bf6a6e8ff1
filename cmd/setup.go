package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/ytfolder/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a config file from the embedded example and prints the next steps.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil && !cmd.Bool("force") {
		r.logger.Info("config file already exists", "path", configPath)
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return err
		}
		r.writePlain("✓ Config already present at %s (use --force to overwrite)\n", configPath)
		return r.writeNextSteps(configPath, config)
	}

	if cmd.Bool("force") {
		if err := os.Remove(configPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to replace config file: %w", err)
		}
	}

	r.logger.Info("creating config file from template", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load created config: %w", err)
	}

	r.writePlain("✓ Config written to %s\n", configPath)
	return r.writeNextSteps(configPath, config)
}

func (r *Runner) writeNextSteps(configPath string, config *shared.Config) error {
	config.ApplyEnv()

	r.writePlainln("Next steps:")
	step := 1
	if config.Search.Provider == shared.ProviderYouTube && config.Search.APIKey == "" {
		r.writePlain("%d. Set search.api_key in %s or export %s\n", step, configPath, shared.EnvAPIKey)
		step++
	}
	if _, err := os.Stat(shared.ExpandPath(config.Credentials.YouTube.ClientSecretPath)); err != nil {
		r.writePlain("%d. To publish playlists, save an OAuth client secret to %s and run 'ytfolder auth'\n",
			step, config.Credentials.YouTube.ClientSecretPath)
		step++
	}
	return r.writePlain("%d. Run 'ytfolder run <folder>'\n", step)
}
