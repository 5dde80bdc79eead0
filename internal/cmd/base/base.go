// Package base holds what every recipe-builder command shares: logging, UI,
// file system access and the helpers that turn a configuration into open
// stores.
package base

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"github.com/hashicorp-forge/recipe-builder/internal/config"
	"github.com/hashicorp-forge/recipe-builder/pkg/database"
	"github.com/hashicorp-forge/recipe-builder/pkg/objectstore"
	"github.com/hashicorp-forge/recipe-builder/pkg/recipe"
)

// OpenDBFunc opens the source database.
type OpenDBFunc func(ctx context.Context, cfg database.Config, log hclog.Logger) (*gorm.DB, error)

// Command is embedded by every command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs is used for configuration, instruction and archive files.
	Fs afero.Fs

	// OpenDB defaults to database.Connect.
	OpenDB OpenDBFunc
}

// New returns a Command working on the OS file system.
func New(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log:    log,
		UI:     ui,
		Fs:     afero.NewOsFs(),
		OpenDB: database.Connect,
	}
}

// LoadConfig parses the configuration file and applies its log level.
func (c *Command) LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.NewConfig(c.Fs, path)
	if err != nil {
		return nil, err
	}
	c.Log.SetLevel(cfg.Level())
	return cfg, nil
}

// Database opens the configured source database.
func (c *Command) Database(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	open := c.OpenDB
	if open == nil {
		open = database.Connect
	}
	db, err := open(ctx, *cfg.Database, c.Log)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	return db, nil
}

// Objects opens the configured object store.
func (c *Command) Objects(ctx context.Context, cfg *config.Config) (recipe.ObjectReader, error) {
	switch {
	case cfg.S3 != nil:
		adapter, err := objectstore.NewAdapter(ctx, cfg.S3, c.Log)
		if err != nil {
			return nil, fmt.Errorf("error initializing object store: %w", err)
		}
		return adapter, nil
	case cfg.LocalStorage != nil:
		return objectstore.NewDirReader(c.Fs, cfg.LocalStorage.Root, c.Log), nil
	default:
		return nil, fmt.Errorf("no object store configured: add an s3 or local_storage block")
	}
}
