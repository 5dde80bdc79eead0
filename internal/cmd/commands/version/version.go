package version

import (
	"github.com/hashicorp-forge/recipe-builder/internal/cmd/base"
	"github.com/hashicorp-forge/recipe-builder/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return "Usage: recipe-builder version"
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.String())
	return 0
}
