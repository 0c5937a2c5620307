package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/apimd/cmd/apimd/commands"
	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
	"git.home.luguber.info/inful/apimd/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Must(&cli,
		kong.Name("apimd"),
		kong.Description("Generate Markdown API reference pages from API models."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger := slog.Default()
	if err := ctx.Run(&commands.Global{Logger: logger}, &cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, logger).HandleError(err)
	}
}
