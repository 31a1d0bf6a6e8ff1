package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytfolder/internal/matcher"
	"github.com/desertthunder/ytfolder/internal/metadata"
	"github.com/desertthunder/ytfolder/internal/services"
	"github.com/desertthunder/ytfolder/internal/shared"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Searcher, TagReader and Publisher are built from the config when not injected.
type Runner struct {
	config      *shared.Config
	searcher    matcher.Searcher
	tags        metadata.TagReader
	publisher   services.Publisher
	clipboard   Clipboard
	httpClient  *http.Client
	logger      *log.Logger
	input       io.Reader
	output      io.Writer
	interactive bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Searcher    matcher.Searcher
	TagReader   metadata.TagReader
	Publisher   services.Publisher
	Clipboard   Clipboard
	HTTPClient  *http.Client
	Logger      *log.Logger
	Input       io.Reader
	Output      io.Writer
	Interactive *bool // defaults to whether stdin is a terminal
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Clipboard == nil {
		opts.Clipboard = systemClipboard{}
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if opts.Interactive != nil {
		interactive = *opts.Interactive
	}

	return &Runner{
		config:      opts.Config,
		searcher:    opts.Searcher,
		tags:        opts.TagReader,
		publisher:   opts.Publisher,
		clipboard:   opts.Clipboard,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		input:       opts.Input,
		output:      opts.Output,
		interactive: interactive,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		runCommand, searchCommand, authCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig returns the injected config unless --config names a file explicitly.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	config := r.config
	if cmd.IsSet("config") {
		loaded, err := shared.LoadConfig(cmd.String("config"))
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
