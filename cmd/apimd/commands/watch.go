package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/apimd/internal/logfields"
	"git.home.luguber.info/inful/apimd/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	GenerateFlags
	Debounce time.Duration `help:"Quiet period after a change before regenerating" default:"500ms"`
}

// Run generates once, then regenerates on model changes until interrupted.
func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := w.loadConfig(root)
	if err != nil {
		return err
	}
	p, err := w.newPipeline(cfg, g)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	regenerate := func(ctx context.Context, changed []string) error {
		if len(changed) > 0 {
			g.Logger.Info("Model changed, regenerating", logfields.Count(len(changed)))
		}
		report, err := p.Run(ctx)
		if report != nil && report.Articles > 0 {
			root.printReport(report)
		}
		return err
	}

	watcher, err := watch.New(cfg.Input.Models, regenerate, watch.Options{Debounce: w.Debounce, Logger: g.Logger})
	if err != nil {
		return err
	}
	// A broken model should not stop the watcher; the next save may fix it.
	if err := regenerate(ctx, nil); err != nil {
		g.Logger.Error("Initial generation failed", logfields.Error(err))
	}

	g.Logger.Info("Watching model files", logfields.Count(len(cfg.Input.Models)))
	if err := watcher.Run(ctx); err != nil {
		return err
	}
	g.Logger.Info("Watch stopped")
	return nil
}
