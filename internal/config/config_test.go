package config

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/recipe-builder/pkg/database"
)

const sampleConfig = `
log_level = "debug"

database {
  host     = "localhost"
  port     = 5432
  user     = "dsw"
  password = "dsw"
  dbname   = "engine"
}

s3 {
  endpoint   = "http://localhost:9000"
  bucket     = "engine-wizard"
  access_key = "minio"
  secret_key = "minio-secret"
}
`

func writeConfig(t *testing.T, fs afero.Fs, name, body string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, name, []byte(body), 0o644))
}

func TestLoad_File(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/etc/recipe.hcl", sampleConfig)

	cfg, err := load(fs, "/etc/recipe.hcl", map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, hclog.Debug, cfg.Level())
	require.NotNil(t, cfg.Database)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "engine", cfg.Database.DBName)
	require.NotNil(t, cfg.S3)
	assert.Equal(t, "engine-wizard", cfg.S3.Bucket)
	assert.Equal(t, "us-east-1", cfg.S3.Region, "defaults applied")
	assert.Nil(t, cfg.LocalStorage)
}

func TestLoad_EnvOverrides(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/etc/recipe.hcl", sampleConfig)

	cfg, err := load(fs, "/etc/recipe.hcl", map[string]string{
		"RECIPE_LOG_LEVEL":     "warn",
		"RECIPE_DATABASE_DSN":  "postgres://dsw:dsw@db/engine",
		"RECIPE_S3_BUCKET":     "other",
		"RECIPE_S3_SECRET_KEY": "rotated",
		"S3_BUCKET":            "ignored without prefix",
	})
	require.NoError(t, err)

	assert.Equal(t, hclog.Warn, cfg.Level())
	assert.Equal(t, "postgres://dsw:dsw@db/engine", cfg.Database.DSN)
	assert.Equal(t, "localhost", cfg.Database.Host, "file settings are kept")
	assert.Equal(t, "other", cfg.S3.Bucket)
	assert.Equal(t, "rotated", cfg.S3.SecretKey)
	assert.Equal(t, "minio", cfg.S3.AccessKey)
}

func TestLoad_EnvOnly(t *testing.T) {
	cfg, err := load(afero.NewMemMapFs(), "", map[string]string{
		"RECIPE_DATABASE_DRIVER": database.DriverSQLite,
		"RECIPE_DATABASE_DSN":    "snapshot.db",
	})
	require.NoError(t, err)

	assert.Equal(t, hclog.Info, cfg.Level())
	assert.Equal(t, database.DriverSQLite, cfg.Database.Driver)
	assert.Nil(t, cfg.S3)
}

func TestLoad_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/bad-syntax.hcl", `database {`)
	writeConfig(t, fs, "/no-database.hcl", `log_level = "loud"`)
	writeConfig(t, fs, "/both-stores.hcl", `
database {
  dsn = "postgres://x"
}
s3 {
  bucket = "b"
}
local_storage {
  root = "/snapshot"
}
`)

	tests := []struct {
		name string
		file string
		want []string
	}{
		{"missing file", "/nope.hcl", []string{"not found"}},
		{"bad syntax", "/bad-syntax.hcl", []string{"failed to parse"}},
		{"every problem", "/no-database.hcl", []string{"log_level", "database: block is required"}},
		{"two object stores", "/both-stores.hcl", []string{"mutually exclusive"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(fs, tt.file, map[string]string{})
			require.Error(t, err)
			for _, want := range tt.want {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
