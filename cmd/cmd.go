// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/ytfolder/internal/models"
	"github.com/urfave/cli/v3"
)

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// runCommand resolves a folder into a playlist URL
func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Scan a folder, match every song on YouTube and build a playlist URL",
		ArgsUsage: "<folder>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "folder"},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "How low-confidence matches are settled: prompt, dialog or none",
				Value:   models.ModePrompt.String(),
			},
			&cli.StringFlag{
				Name:    "export",
				Aliases: []string{"o"},
				Usage:   "Write the report to a file (.csv, .md, .txt or .json)",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "Title of the published playlist (defaults to the folder name)",
			},
			&cli.BoolFlag{
				Name:  "publish",
				Usage: "Publish the playlist to your YouTube account without asking",
			},
			&cli.BoolFlag{
				Name:  "no-publish",
				Usage: "Never offer to publish the playlist",
			},
			&cli.BoolFlag{
				Name:  "no-clipboard",
				Usage: "Do not copy the playlist URL to the clipboard",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Action: r.Run,
	}
}

// searchCommand shows scored candidates for a single query
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search YouTube for one song and show how each result scores",
		ArgsUsage: "<query>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results (defaults to search.limit)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Search,
	}
}

// authCommand runs the OAuth flow for publishing
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authorize ytfolder to create playlists on your YouTube account",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "client-secret",
				Usage: "Path to an OAuth client secret JSON file (overrides credentials.youtube.client_secret_path)",
			},
		},
		Action: r.Auth,
	}
}

// setupCommand writes a starter config file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml from the bundled example",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
		},
		Action: r.Setup,
	}
}
