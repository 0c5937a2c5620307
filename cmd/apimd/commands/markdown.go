package commands

import (
	"context"
	"os/signal"
	"syscall"
)

// MarkdownCmd implements the 'markdown' command.
type MarkdownCmd struct {
	GenerateFlags
}

// Run performs one generation.
func (m *MarkdownCmd) Run(g *Global, root *CLI) error {
	cfg, err := m.loadConfig(root)
	if err != nil {
		return err
	}
	p, err := m.newPipeline(cfg, g)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report, err := p.Run(ctx)
	if report != nil && report.Articles > 0 {
		root.printReport(report)
	}
	return err
}
