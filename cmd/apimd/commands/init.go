package commands

import (
	"git.home.luguber.info/inful/apimd/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

// Run writes the example configuration to the --config path.
func (i *InitCmd) Run(_ *Global, root *CLI) error {
	root.printf("Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	root.printf("Initialized successfully\n")
	return nil
}
