package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/recipe-builder/internal/cmd/base"
	"github.com/hashicorp-forge/recipe-builder/internal/cmd/commands/build"
	"github.com/hashicorp-forge/recipe-builder/internal/cmd/commands/contents"
	"github.com/hashicorp-forge/recipe-builder/internal/cmd/commands/tenants"
	"github.com/hashicorp-forge/recipe-builder/internal/cmd/commands/version"
)

// initCommands returns the command factories of the CLI.
func initCommands(log hclog.Logger, ui cli.Ui) map[string]cli.CommandFactory {
	b := base.New(log, ui)

	return map[string]cli.CommandFactory{
		"build": func() (cli.Command, error) {
			return &build.Command{Command: b}, nil
		},
		"contents": func() (cli.Command, error) {
			return &contents.Command{Command: b}, nil
		},
		"tenants": func() (cli.Command, error) {
			return &tenants.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
