package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytfolder/internal/matcher"
	"github.com/desertthunder/ytfolder/internal/metadata"
	"github.com/desertthunder/ytfolder/internal/models"
	"github.com/desertthunder/ytfolder/internal/prompt"
	"github.com/desertthunder/ytfolder/internal/scanner"
	"github.com/desertthunder/ytfolder/internal/services"
	"github.com/desertthunder/ytfolder/internal/shared"
	"github.com/desertthunder/ytfolder/internal/tasks"
	"github.com/desertthunder/ytfolder/internal/ui"
	"github.com/urfave/cli/v3"
)

const dialogLogPath = "./tmp/ytfolder.log"

// Run scans a folder, resolves every song and prints the assembled playlist URL.
//
// A missing folder, an empty folder or a run without playable matches is reported and ends the run without error.
// A cancelled run presents what matched so far and skips publishing.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	folder := cmd.StringArg("folder")
	if folder == "" {
		return fmt.Errorf("%w: folder", shared.ErrMissingArgument)
	}
	if cmd.Bool("publish") && cmd.Bool("no-publish") {
		return fmt.Errorf("%w: --publish and --no-publish are mutually exclusive", shared.ErrInvalidArgument)
	}

	mode, err := models.ParseMode(cmd.String("mode"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := r.logger
	if mode == models.ModeDialog {
		// the dialog owns the terminal
		if logger, err = shared.NewFileLogger(dialogLogPath); err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
	}
	if cmd.Bool("verbose") {
		shared.SetLogLevel(logger, log.DebugLevel)
	}
	logger = shared.WithLogger(logger, "run", shared.GenerateID())

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	searcher, err := r.newSearcher(runCtx, config, logger)
	if err != nil {
		return err
	}

	in := prompt.NewReader(r.input)
	resolver := matcher.NewResolver(searcher, r.newChooser(mode, in, cancel), matcher.Options{
		Threshold:      config.Search.Threshold,
		Limit:          config.Search.Limit,
		OfficialSuffix: config.Search.OfficialSuffix,
		Logger:         logger,
	})

	engine := tasks.NewEngine(tasks.EngineOpts{
		Scanner:   scanner.New(r.tagReader(config), config.Scan.Extensions, logger),
		Resolver:  resolver,
		Publisher: &lazyPublisher{build: func(ctx context.Context) (services.Publisher, error) { return r.newPublisher(ctx, config, logger) }},
		Logger:    logger,
		Reporter:  r.report,
	})

	result, err := engine.Run(runCtx, folder)
	switch {
	case errors.Is(err, context.Canceled) && result != nil:
		return r.cancelled(ctx, engine, result, cmd.String("export"), !cmd.Bool("no-clipboard"), logger)
	case errors.Is(err, shared.ErrFolderNotFound):
		return r.writePlain("Folder not found: %s\n", folder)
	case errors.Is(err, shared.ErrNoSongs):
		return r.writePlain("No songs found in the selected folder.\n")
	case errors.Is(err, shared.ErrNoPlayableMatches):
		r.export(engine, result, cmd.String("export"), logger)
		return r.writePlainln("⚠ No videos found.")
	case err != nil:
		return err
	}

	r.export(engine, result, cmd.String("export"), logger)
	r.present(result, !cmd.Bool("no-clipboard"), logger)

	if !r.shouldPublish(ctx, cmd, mode, in, result) {
		return nil
	}

	req := services.PublishRequest{
		Title:       publishTitle(cmd.String("title"), config.Publish.Title, folder),
		Description: config.Publish.Description,
		Privacy:     config.Publish.Privacy,
	}

	pl, err := engine.Publish(ctx, result, req)
	if err != nil {
		if pl != nil {
			r.writePlain("⚠ Playlist partially created: %s\n", pl.URL)
		}
		return r.writePlain("✗ Publish failed: %v\n", err)
	}

	return r.writePlain("✓ Published %d videos to %s\n", pl.Items, pl.URL)
}

// cancelled keeps what a cancelled run matched: the export is written and any playable songs are presented.
// Publishing is skipped. Returns the parent context's error, so quitting the dialog is not a failure but an
// interrupt still is.
func (r *Runner) cancelled(ctx context.Context, engine *tasks.Engine, result *tasks.RunResult, exportPath string, copyURL bool, logger *log.Logger) error {
	r.writePlainln("⚠ Run cancelled after %d songs.", len(result.Report.Entries))
	r.export(engine, result, exportPath, logger)
	if len(result.VideoIDs) > 0 {
		r.present(result, copyURL, logger)
	}
	return ctx.Err()
}

// report prints progress updates as plain lines.
func (r *Runner) report(update tasks.ProgressUpdate) {
	r.writePlain("%s\n", update.Message)
}

// present prints the summary and URL, copying it to the clipboard when asked.
func (r *Runner) present(result *tasks.RunResult, copyURL bool, logger *log.Logger) {
	report := result.Report

	r.writePlainHeader("Playlist")
	r.writePlain("Songs:       %d\n", len(report.Entries))
	r.writePlain("Matched:     %d (%d auto, %d chosen)\n",
		len(report.Results()), report.Count(models.AutoMatched), report.Count(models.HumanChosen))
	r.writePlain("Skipped:     %d\n", report.Count(models.Skipped))
	r.writePlain("No results:  %d\n", report.Count(models.NoResults))
	r.writePlain("Videos:      %d\n\n", len(result.VideoIDs))

	if copyURL {
		if err := r.clipboard.WriteAll(result.URL()); err != nil {
			logger.Warn("failed to copy to clipboard", "error", err)
		} else {
			r.writePlain("✓ Playlist URL copied to clipboard!\n")
		}
	}
	r.writePlain("%s\n", result.URL())
}

// export writes the report when path is set. Failures are logged and shown but do not fail the run.
func (r *Runner) export(engine *tasks.Engine, result *tasks.RunResult, path string, logger *log.Logger) {
	if path == "" || result == nil {
		return
	}
	if err := engine.Export(result, path); err != nil {
		logger.Error("export failed", "path", path, "error", err)
		r.writePlain("✗ Export failed: %v\n", err)
	}
}

// shouldPublish settles whether to publish from flags, falling back to asking in interactive modes.
func (r *Runner) shouldPublish(ctx context.Context, cmd *cli.Command, mode models.Mode, in *bufio.Reader, result *tasks.RunResult) bool {
	switch {
	case cmd.Bool("publish"):
		return true
	case cmd.Bool("no-publish"), mode == models.ModeNone:
		return false
	}

	question := "Publish this playlist to your YouTube account?"
	if mode == models.ModeDialog {
		detail := fmt.Sprintf("%d videos will be added to a new playlist.", len(result.VideoIDs))
		return ui.Confirm(ctx, nil, nil, question, detail)
	}
	return prompt.Confirm(ctx, in, r.output, question)
}

// newChooser picks the human chooser for mode. Quitting the dialog cancels the run.
func (r *Runner) newChooser(mode models.Mode, in *bufio.Reader, cancel context.CancelFunc) matcher.Chooser {
	switch mode {
	case models.ModeDialog:
		chooser := ui.NewDialogChooser(nil, nil)
		chooser.OnQuit = cancel
		return chooser
	case models.ModeNone:
		return matcher.SkipChooser{}
	default:
		return prompt.NewChooser(in, r.output)
	}
}

// newSearcher returns the injected searcher or one built from config.
func (r *Runner) newSearcher(ctx context.Context, config *shared.Config, logger *log.Logger) (matcher.Searcher, error) {
	if r.searcher != nil {
		return r.searcher, nil
	}
	return services.NewSearcher(ctx, config.Search, r.httpClient, logger)
}

// tagReader returns the injected reader or one selected by scan.read_tags.
func (r *Runner) tagReader(config *shared.Config) metadata.TagReader {
	if r.tags != nil {
		return r.tags
	}
	if !config.Scan.ReadTags {
		return metadata.Nop{}
	}
	return metadata.NewReader()
}

func publishTitle(flag, configured, folder string) string {
	switch {
	case flag != "":
		return flag
	case configured != "":
		return configured
	default:
		return filepath.Base(filepath.Clean(folder))
	}
}

// lazyPublisher builds its publisher on first use, so the OAuth flow only runs when publishing.
type lazyPublisher struct {
	build     func(ctx context.Context) (services.Publisher, error)
	publisher services.Publisher
}

func (l *lazyPublisher) Publish(ctx context.Context, req services.PublishRequest) (*services.PublishedPlaylist, error) {
	if l.publisher == nil {
		p, err := l.build(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrPublish, err)
		}
		l.publisher = p
	}
	return l.publisher.Publish(ctx, req)
}
