// Package cmdtest runs commands against an in-memory source deployment.
package cmdtest

import (
	"context"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hashicorp-forge/recipe-builder/internal/cmd/base"
	"github.com/hashicorp-forge/recipe-builder/pkg/database"
	"github.com/hashicorp-forge/recipe-builder/pkg/models"
)

// ConfigPath is where NewCommand writes the configuration file.
const ConfigPath = "/recipe.hcl"

// ObjectsRoot is the local_storage root of the configuration.
const ObjectsRoot = "/objects"

const config = `
log_level = "warn"

database {
  driver = "sqlite"
  dsn    = "file::memory:"
}

local_storage {
  root = "/objects"
}
`

// OpenDB returns a migrated, empty in-memory database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.ModelsToAutoMigrate()...))
	return db
}

// NewCommand returns a base command on a memory file system holding the
// configuration file, whose database is db.
func NewCommand(t *testing.T, db *gorm.DB) (*base.Command, *cli.MockUi) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ConfigPath, []byte(config), 0o644))
	require.NoError(t, fs.MkdirAll(ObjectsRoot, 0o755))

	ui := cli.NewMockUi()
	return &base.Command{
		Log: hclog.NewNullLogger(),
		UI:  ui,
		Fs:  fs,
		OpenDB: func(context.Context, database.Config, hclog.Logger) (*gorm.DB, error) {
			return db, nil
		},
	}, ui
}
