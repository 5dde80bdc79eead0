package version

import (
	"testing"

	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"

	"github.com/hashicorp-forge/recipe-builder/internal/cmd/base"
	"github.com/hashicorp-forge/recipe-builder/internal/version"
)

func TestRun(t *testing.T) {
	ui := cli.NewMockUi()
	c := &Command{Command: &base.Command{UI: ui}}

	assert.Equal(t, 0, c.Run(nil))
	assert.Equal(t, version.String()+"\n", ui.OutputWriter.String())
}
