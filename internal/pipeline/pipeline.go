// Package pipeline runs one generation: load the model, generate and render
// articles, stamp page identity, write, prune and verify. The CLI and watch
// mode both go through Run.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/apimd/internal/apimodel"
	"git.home.luguber.info/inful/apimd/internal/config"
	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
	"git.home.luguber.info/inful/apimd/internal/labels"
	"git.home.luguber.info/inful/apimd/internal/logfields"
	"git.home.luguber.info/inful/apimd/internal/manifest"
	"git.home.luguber.info/inful/apimd/internal/metrics"
	"git.home.luguber.info/inful/apimd/internal/output"
	"git.home.luguber.info/inful/apimd/internal/render"
	"git.home.luguber.info/inful/apimd/internal/sourcelink"
	"git.home.luguber.info/inful/apimd/internal/verify"
)

// Stage names used in logs and metrics.
const (
	StageLoad     = "load"
	StageSource   = "source"
	StageGenerate = "generate"
	StagePrune    = "prune"
	StageVerify   = "verify"
)

// Options is everything a run needs to know.
type Options struct {
	Models               []string
	OutputDir            string
	Format               render.Format
	Locale               string
	ShowInheritedMembers bool
	IncompleteNote       bool
	UID                  bool
	Fingerprint          bool
	// Clean removes pages of items that are no longer generated.
	Clean bool
	// Verify checks every page after writing.
	Verify bool
	// ManifestPath is the sqlite manifest; empty disables it.
	ManifestPath string
	// RepositoryURL overrides source link detection.
	RepositoryURL string
	// DetectGit derives source links from the git checkout of the working
	// directory when RepositoryURL is empty.
	DetectGit       bool
	MetricsTextfile string
}

// OptionsFromConfig maps a loaded configuration onto run options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	format, err := render.ParseFormat(cfg.Output.Extension)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Models:               cfg.Input.Models,
		OutputDir:            cfg.Output.Directory,
		Format:               format,
		Locale:               cfg.Render.Locale,
		ShowInheritedMembers: cfg.Render.ShowInheritedMembers,
		IncompleteNote:       cfg.Render.IncompleteNoteEnabled(),
		UID:                  cfg.Render.UIDEnabled(),
		Fingerprint:          cfg.Render.FingerprintEnabled(),
		Clean:                cfg.Output.Clean,
		ManifestPath:         cfg.Output.ManifestPath(),
		RepositoryURL:        cfg.Source.RepositoryURL,
		DetectGit:            cfg.Source.DetectGitEnabled(),
		MetricsTextfile:      cfg.Metrics.Textfile,
	}, nil
}

// Report summarizes a run.
type Report struct {
	RunID                string
	Articles             int
	Written              int
	Unchanged            int
	Removed              []string
	UnresolvedReferences int
	MaybeIncomplete      int
	// Verification is nil unless Options.Verify is set.
	Verification *verify.Result
	Duration     time.Duration
}

// Pipeline runs generations with fixed options. It is safe to call Run
// repeatedly but not concurrently.
type Pipeline struct {
	opts     Options
	recorder metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
	newRunID func() string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a Pipeline for opts. Without options it records nothing and logs to slog.Default.
func New(opts Options, options ...Option) *Pipeline {
	if opts.Format == "" {
		opts.Format = render.FormatMarkdown
	}
	p := &Pipeline{
		opts:     opts,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
		newRunID: uuid.NewString,
	}
	for _, o := range options {
		o(p)
	}
	return p
}

// Run performs one generation. A failed verification returns the report
// together with a validation error.
func (p *Pipeline) Run(ctx context.Context) (report *Report, err error) {
	start := p.now()
	report = &Report{RunID: p.newRunID()}
	p.logger.Info("Starting generation", slog.String("run_id", report.RunID), logfields.Count(len(p.opts.Models)))

	defer func() {
		report.Duration = p.now().Sub(start)
		p.recorder.ObserveRunDuration(report.Duration)
		switch {
		case err == nil:
			p.recorder.IncRunOutcome(metrics.RunSuccess)
		case ctx.Err() != nil:
			p.recorder.IncRunOutcome(metrics.RunCanceled)
		default:
			p.recorder.IncRunOutcome(metrics.RunFailed)
		}
		p.exportMetrics()
	}()

	var model *apimodel.Model
	if err := p.stage(StageLoad, func() error {
		var lerr error
		model, lerr = apimodel.LoadModel(p.logger, p.opts.Models...)
		return lerr
	}); err != nil {
		return report, err
	}

	var sourceURL func(string) string
	_ = p.stage(StageSource, func() error {
		sourceURL = p.sourceResolver()
		return nil
	})

	if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
		return report, errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext(errors.ContextPath, p.opts.OutputDir).
			Build()
	}

	var store *manifest.Store
	var pages output.Manifest
	if p.opts.ManifestPath != "" {
		s, oerr := manifest.Open(p.opts.ManifestPath)
		if oerr != nil {
			return report, errors.WrapError(oerr, errors.CategoryInternal, "failed to open manifest").
				WithContext(errors.ContextPath, p.opts.ManifestPath).
				Build()
		}
		defer func() {
			if cerr := s.Close(); cerr != nil {
				p.logger.Warn("Failed to close manifest", logfields.Error(cerr))
			}
		}()
		store, pages = s, s
	}

	cat := labels.For(p.opts.Locale)
	g := newGenerator(model, p.opts, cat, p.logger, sourceURL)
	r := render.New(render.Options{
		Format:         p.opts.Format,
		Labels:         cat,
		IncompleteNote: p.opts.IncompleteNote,
		Logger:         p.logger,
	})
	w := output.New(p.opts.OutputDir, p.opts.Format.Extension(), pages, report.RunID, p.logger)

	keep := map[string]bool{}
	var rendered []renderedPage
	if err := p.stage(StageGenerate, func() error {
		var gerr error
		rendered, gerr = p.generate(ctx, g, r, w, keep, report)
		return gerr
	}); err != nil {
		return report, err
	}

	if p.opts.Clean {
		if err := p.stage(StagePrune, func() error {
			removed, perr := w.Prune(ctx, keep)
			report.Removed = removed
			for range removed {
				p.recorder.IncPageResult(metrics.PageRemoved)
			}
			return perr
		}); err != nil {
			return report, err
		}
	}

	if store != nil {
		if rerr := store.RecordRun(ctx, manifest.Run{
			ID:         report.RunID,
			StartedAt:  start,
			FinishedAt: p.now(),
			Pages:      report.Articles,
			Written:    report.Written,
			Unchanged:  report.Unchanged,
			Removed:    len(report.Removed),
		}); rerr != nil {
			p.logger.Warn("Failed to record run", logfields.Error(rerr))
		}
	}

	if p.opts.Verify {
		_ = p.stage(StageVerify, func() error {
			report.Verification = verifyPages(rendered, p.opts.Format.Extension())
			return nil
		})
		for _, issue := range report.Verification.Issues {
			p.logger.Warn("Verification issue", logfields.Page(issue.Page), slog.String("rule", issue.Rule), slog.String("message", issue.Message))
		}
		if verr := report.Verification.Err(); verr != nil {
			return report, verr
		}
	}

	p.logger.Info("Generation complete",
		slog.String("run_id", report.RunID),
		slog.Int("articles", report.Articles),
		slog.Int("written", report.Written),
		slog.Int("unchanged", report.Unchanged),
		slog.Int("removed", len(report.Removed)),
		slog.Int("unresolved_references", report.UnresolvedReferences))
	return report, nil
}

// stage runs fn, logging and recording its duration.
func (p *Pipeline) stage(name string, fn func() error) error {
	start := p.now()
	err := fn()
	d := p.now().Sub(start)
	p.recorder.ObserveStageDuration(name, d)
	if err != nil {
		p.logger.Error("Stage failed", logfields.Stage(name), logfields.DurationMS(float64(d.Microseconds())/1000), logfields.Error(err))
		return err
	}
	p.logger.Debug("Stage complete", logfields.Stage(name), logfields.DurationMS(float64(d.Microseconds())/1000))
	return nil
}

// sourceResolver returns the fallback repository URL function, or nil.
func (p *Pipeline) sourceResolver() func(string) string {
	if p.opts.RepositoryURL != "" {
		return sourcelink.NewResolver(p.opts.RepositoryURL).URL
	}
	if !p.opts.DetectGit {
		return nil
	}
	repo, err := sourcelink.Detect(".")
	if err != nil {
		p.logger.Debug("No repository detected for source links", logfields.Error(err))
		return nil
	}
	res, err := sourcelink.ForDirectory(repo, ".")
	if err != nil {
		p.logger.Debug("Working directory outside repository", logfields.Error(err))
		return nil
	}
	p.logger.Debug("Detected repository for source links", slog.String("base", res.Base()))
	return res.URL
}

func (p *Pipeline) exportMetrics() {
	if p.opts.MetricsTextfile == "" {
		return
	}
	exporter, ok := p.recorder.(interface{ WriteTextfile(string) error })
	if !ok {
		return
	}
	if err := exporter.WriteTextfile(p.opts.MetricsTextfile); err != nil {
		p.logger.Warn("Failed to export metrics", logfields.Error(err))
	}
}
