package build

import (
	"archive/zip"
	"bytes"
	"io"
	"path"
	"testing"

	"github.com/google/uuid"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/recipe-builder/internal/cmd/cmdtest"
	"github.com/hashicorp-forge/recipe-builder/pkg/models"
)

func TestOutputName(t *testing.T) {
	assert.Equal(t, "seed-demo-recipe.zip", OutputName("Demo Recipe"))
	assert.Equal(t, "seed-demo.zip", OutputName("demo"))
	assert.Equal(t, "seed-recipe.zip", OutputName(""))
}

type fixture struct {
	cmd    *Command
	ui     *cli.MockUi
	tenant uuid.UUID
	asset  uuid.UUID
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := cmdtest.OpenDB(t)
	tenant := uuid.New()
	asset := uuid.New()
	require.NoError(t, db.Create(&models.Package{
		ID: "org:core:1.0.0", Name: "Core", Events: models.JSON(`[]`), TenantUUID: tenant,
	}).Error)
	require.NoError(t, db.Create(&models.DocumentTemplate{
		ID:              "org:tmpl:1.0.0",
		Name:            "Template",
		AllowedPackages: models.JSON(`[]`),
		TenantUUID:      tenant,
		Phase:           models.ReleasedDocumentTemplatePhase,
	}).Error)
	require.NoError(t, db.Create(&models.DocumentTemplateAsset{
		DocumentTemplateID: "org:tmpl:1.0.0",
		UUID:               asset,
		FileName:           "logo.png",
		TenantUUID:         tenant,
	}).Error)

	base, ui := cmdtest.NewCommand(t, db)
	key := path.Join(cmdtest.ObjectsRoot, tenant.String(), "templates", "org:tmpl:1.0.0", asset.String())
	require.NoError(t, afero.WriteFile(base.Fs, key, []byte("png"), 0o644))

	return &fixture{cmd: &Command{Command: base}, ui: ui, tenant: tenant, asset: asset}
}

func writeInstruction(t *testing.T, c *Command, name, body string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(c.Fs, name, []byte(body), 0o644))
}

func archiveEntries(t *testing.T, data []byte) map[string]string {
	t.Helper()

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	entries := make(map[string]string, len(r.File))
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = string(b)
	}
	return entries
}

func TestRun_YAMLInstruction(t *testing.T) {
	f := setup(t)
	c, ui, tenant := f.cmd, f.ui, f.tenant
	writeInstruction(t, c, "/demo.yaml", `
name: Demo Recipe
tenantUuid: `+tenant.String()+`
packages:
  - id: org:core:1.0.0
documentTemplates:
  - id: org:tmpl:1.0.0
`)

	code := c.Run([]string{"-config", cmdtest.ConfigPath, "/demo.yaml"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "seed-demo-recipe.zip")

	data, err := afero.ReadFile(c.Fs, "seed-demo-recipe.zip")
	require.NoError(t, err)

	entries := archiveEntries(t, data)
	assert.Contains(t, entries, "Demo Recipe.seed.json")
	assert.Contains(t, entries, "packages/1__org_core_1.0.0.sql")
	assert.Contains(t, entries, "document-template/org_tmpl_1.0.0/01__document-template.sql")
	assert.Equal(t, "png", entries["files/templates/org_tmpl_1.0.0/"+f.asset.String()])
	for name, body := range entries {
		assert.NotContains(t, body, tenant.String(), name)
	}
}

func TestRun_TenantOverrideAndOut(t *testing.T) {
	f := setup(t)
	c, ui, tenant := f.cmd, f.ui, f.tenant
	writeInstruction(t, c, "/demo.json", `{
		"name": "demo",
		"tenantUuid": "`+uuid.NewString()+`",
		"packages": [{"id": "org:core:1.0.0"}]
	}`)

	code := c.Run([]string{
		"-config", cmdtest.ConfigPath,
		"-tenant", tenant.String(),
		"-out", "/out/recipe.zip",
		"/demo.json",
	})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	data, err := afero.ReadFile(c.Fs, "/out/recipe.zip")
	require.NoError(t, err)
	assert.Contains(t, archiveEntries(t, data), "packages/1__org_core_1.0.0.sql")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		body    string
		wantErr string
	}{
		{
			name:    "no instruction",
			args:    []string{"-config", cmdtest.ConfigPath},
			wantErr: "exactly one instruction file",
		},
		{
			name:    "missing instruction file",
			args:    []string{"-config", cmdtest.ConfigPath, "/missing.json"},
			wantErr: "error reading instruction file",
		},
		{
			name:    "missing config",
			args:    []string{"-config", "/nope.hcl", "/i.json"},
			body:    `{"name": "demo"}`,
			wantErr: "error loading configuration",
		},
		{
			name:    "invalid tenant flag",
			args:    []string{"-config", cmdtest.ConfigPath, "-tenant", "nope", "/i.json"},
			body:    `{"name": "demo"}`,
			wantErr: "invalid -tenant",
		},
		{
			name:    "invalid instruction",
			args:    []string{"-config", cmdtest.ConfigPath, "/i.json"},
			body:    `{"name": "demo"}`,
			wantErr: "invalid instruction file",
		},
		{
			name:    "unknown package",
			args:    []string{"-config", cmdtest.ConfigPath, "/i.json"},
			body:    `{"name": "demo", "tenantUuid": "TENANT", "packages": [{"id": "org:none:1.0.0"}]}`,
			wantErr: "error building recipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			c, ui := f.cmd, f.ui
			if tt.body != "" {
				body := bytes.ReplaceAll([]byte(tt.body), []byte("TENANT"), []byte(f.tenant.String()))
				writeInstruction(t, c, "/i.json", string(body))
			}

			assert.Equal(t, 1, c.Run(tt.args))
			assert.Contains(t, ui.ErrorWriter.String(), tt.wantErr)

			exists, err := afero.Exists(c.Fs, "seed-demo.zip")
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}
