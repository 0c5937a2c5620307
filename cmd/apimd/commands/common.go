package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/apimd/internal/config"
	"git.home.luguber.info/inful/apimd/internal/metrics"
	"git.home.luguber.info/inful/apimd/internal/pipeline"
)

// Global is passed to every command.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"apimd.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Markdown MarkdownCmd `cmd:"" help:"Generate Markdown pages from the configured API models"`
	Watch    WatchCmd    `cmd:"" help:"Generate, then regenerate whenever a model file changes"`
	Check    CheckCmd    `cmd:"" help:"Verify previously generated pages"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`

	// Stdout receives user-facing output; nil means os.Stdout.
	Stdout io.Writer `kong:"-"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(c.Verbose)})))
	return nil
}

// logLevel picks debug for --verbose, otherwise APIMD_LOG_LEVEL or info.
func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(os.Getenv("APIMD_LOG_LEVEL")))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *CLI) out() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c *CLI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out(), format, args...)
}

// GenerateFlags are shared by markdown and watch.
type GenerateFlags struct {
	Models    []string `arg:"" optional:"" help:"Model files; replaces input.models from the configuration"`
	Output    string   `short:"o" help:"Output directory (overrides output.directory)"`
	Ext       string   `name:"ext" help:"Page extension: md or mdx (overrides output.extension)"`
	Inherited bool     `help:"Show inherited members in member tables"`
	Verify    bool     `help:"Verify the generated pages"`
}

// loadConfig reads the configuration file and applies flag overrides. A
// missing configuration file is fine when models are given on the command
// line.
func (f *GenerateFlags) loadConfig(root *CLI) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(root.Config); err != nil && len(f.Models) > 0 {
		cfg = config.Default()
	} else {
		loaded, err := config.Load(root.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if len(f.Models) > 0 {
		cfg.Input.Models = f.Models
	}
	if f.Output != "" {
		cfg.Output.Directory = f.Output
	}
	if f.Ext != "" {
		cfg.Output.Extension = f.Ext
	}
	if f.Inherited {
		cfg.Render.ShowInheritedMembers = true
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newPipeline builds the pipeline for cfg.
func (f *GenerateFlags) newPipeline(cfg *config.Config, g *Global) (*pipeline.Pipeline, error) {
	opts, err := pipeline.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts.Verify = f.Verify

	var rec metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.Textfile != "" {
		rec = metrics.NewPrometheusRecorder(nil)
	}
	return pipeline.New(opts, pipeline.WithRecorder(rec), pipeline.WithLogger(g.Logger)), nil
}

func (c *CLI) printReport(r *pipeline.Report) {
	c.printf("Generated %d pages in %s (%d written, %d unchanged, %d removed)\n",
		r.Articles, r.Duration.Round(time.Millisecond), r.Written, r.Unchanged, len(r.Removed))
	if r.UnresolvedReferences > 0 {
		c.printf("%d references could not be resolved\n", r.UnresolvedReferences)
	}
}
