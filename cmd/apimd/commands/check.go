package commands

import (
	"git.home.luguber.info/inful/apimd/internal/config"
	"git.home.luguber.info/inful/apimd/internal/verify"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Dir string `arg:"" optional:"" help:"Directory of generated pages (defaults to output.directory)" type:"path"`
	Ext string `name:"ext" help:"Page extension: md or mdx (defaults to output.extension)"`
}

// Run verifies the pages in the directory.
func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	dir, ext := c.Dir, c.Ext
	if dir == "" || ext == "" {
		cfg, err := config.Load(root.Config)
		if err != nil {
			if dir == "" {
				return err
			}
			cfg = config.Default()
		}
		if dir == "" {
			dir = cfg.Output.Directory
		}
		if ext == "" {
			ext = cfg.Output.Extension
		}
	}

	res, err := verify.Dir(dir, ext)
	if err != nil {
		return err
	}
	for _, issue := range res.Issues {
		root.printf("%s\n", issue)
	}
	root.printf("Checked %d pages: %d issues\n", res.PagesTotal, len(res.Issues))
	return res.Err()
}
