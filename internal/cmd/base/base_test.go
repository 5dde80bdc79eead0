package base

import (
	"context"
	"flag"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/recipe-builder/internal/config"
	"github.com/hashicorp-forge/recipe-builder/pkg/objectstore"
)

func TestObjects(t *testing.T) {
	c := &Command{Log: hclog.NewNullLogger(), UI: cli.NewMockUi(), Fs: afero.NewMemMapFs()}

	objects, err := c.Objects(context.Background(), &config.Config{
		LocalStorage: &config.LocalStorage{Root: "/objects"},
	})
	require.NoError(t, err)
	assert.IsType(t, &objectstore.DirReader{}, objects)

	_, err = c.Objects(context.Background(), &config.Config{})
	assert.ErrorContains(t, err, "no object store configured")
}

func TestLoadConfig_Missing(t *testing.T) {
	c := &Command{Log: hclog.NewNullLogger(), UI: cli.NewMockUi(), Fs: afero.NewMemMapFs()}
	_, err := c.LoadConfig("/missing.hcl")
	assert.ErrorContains(t, err, "configuration file not found")
}

func TestFlagSet_Help(t *testing.T) {
	var out, tenant string
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	f.StringVar(&out, "out", "seed.zip", "Path of the `file` to write.")
	f.StringVar(&tenant, "tenant", "", "Tenant UUID.")

	help := f.Help()
	assert.Contains(t, help, "Options:")
	assert.Contains(t, help, "-out=<file>")
	assert.Contains(t, help, "Default: seed.zip")
	assert.Contains(t, help, "-tenant=<string>")
}
