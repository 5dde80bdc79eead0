// Package config loads the recipe builder's configuration from an HCL file,
// with environment variables taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/recipe-builder/pkg/database"
	"github.com/hashicorp-forge/recipe-builder/pkg/objectstore"
)

// Config contains the recipe builder configuration.
type Config struct {
	// LogLevel is the level of the root logger (default: "info").
	LogLevel string `hcl:"log_level,optional"`

	// Database is the source deployment's relational store.
	Database *database.Config `hcl:"database,block"`

	// S3 is the source deployment's object store.
	S3 *objectstore.Config `hcl:"s3,block"`

	// LocalStorage reads objects from a local snapshot of the bucket
	// instead of S3.
	LocalStorage *LocalStorage `hcl:"local_storage,block"`
}

// LocalStorage configures a directory laid out like the S3 bucket.
type LocalStorage struct {
	Root string `hcl:"root"`
}

// envOverrides lists the environment variables that override file settings.
type envOverrides struct {
	LogLevel string `env:"LOG_LEVEL"`

	DatabaseDriver string `env:"DATABASE_DRIVER"`
	DatabaseDSN    string `env:"DATABASE_DSN"`

	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION"`
	S3Bucket    string `env:"S3_BUCKET"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
}

// EnvPrefix prefixes every environment variable read by the builder.
const EnvPrefix = "RECIPE_"

// NewConfig parses the HCL file at filename, if any, applies environment
// overrides from the process environment, and validates the result.
func NewConfig(fs afero.Fs, filename string) (*Config, error) {
	return load(fs, filename, nil)
}

// load is NewConfig with an explicit environment; nil uses the process
// environment.
func load(fs afero.Fs, filename string, environ map[string]string) (*Config, error) {
	cfg := &Config{}

	if filename != "" {
		src, err := afero.ReadFile(fs, filename)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("configuration file not found: %s", filename)
			}
			return nil, fmt.Errorf("error reading configuration file: %w", err)
		}
		if err := hclsimple.Decode(filename, src, nil, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	var overrides envOverrides
	if err := env.ParseWithOptions(&overrides, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.apply(overrides)

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(o envOverrides) {
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}

	if o.DatabaseDriver != "" || o.DatabaseDSN != "" {
		if c.Database == nil {
			c.Database = &database.Config{}
		}
		if o.DatabaseDriver != "" {
			c.Database.Driver = o.DatabaseDriver
		}
		if o.DatabaseDSN != "" {
			c.Database.DSN = o.DatabaseDSN
		}
	}

	s3Set := o.S3Endpoint != "" || o.S3Region != "" || o.S3Bucket != "" ||
		o.S3AccessKey != "" || o.S3SecretKey != ""
	if s3Set {
		if c.S3 == nil {
			c.S3 = &objectstore.Config{}
		}
		for _, kv := range []struct {
			dst *string
			val string
		}{
			{&c.S3.Endpoint, o.S3Endpoint},
			{&c.S3.Region, o.S3Region},
			{&c.S3.Bucket, o.S3Bucket},
			{&c.S3.AccessKey, o.S3AccessKey},
			{&c.S3.SecretKey, o.S3SecretKey},
		} {
			if kv.val != "" {
				*kv.dst = kv.val
			}
		}
	}
}

// SetDefaults sets default values for optional configuration fields.
func (c *Config) SetDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.S3 != nil {
		c.S3.SetDefaults()
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}

	if c.Database == nil {
		result = multierror.Append(result, errors.New("database: block is required"))
	} else if err := c.Database.Validate(); err != nil {
		result = multierror.Append(result, fmt.Errorf("database: %w", err))
	}

	if c.S3 != nil {
		if err := c.S3.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("s3: %w", err))
		}
	}
	if c.LocalStorage != nil && c.LocalStorage.Root == "" {
		result = multierror.Append(result, errors.New("local_storage: root is required"))
	}
	if c.S3 != nil && c.LocalStorage != nil {
		result = multierror.Append(result, errors.New("s3 and local_storage are mutually exclusive"))
	}

	return result.ErrorOrNil()
}

// Level returns the configured log level.
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}
