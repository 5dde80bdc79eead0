package contents

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/recipe-builder/internal/cmd/cmdtest"
	"github.com/hashicorp-forge/recipe-builder/pkg/models"
)

func TestSummarize(t *testing.T) {
	q := uuid.New()
	s := Summarize(&models.TenantContents{
		Packages:       []models.Package{{ID: "org:core:1.0.0", Name: "Core", Version: "1.0.0"}},
		Questionnaires: []models.Questionnaire{{UUID: q, Name: "Data Plan"}},
	})

	assert.Equal(t, []Entry{{ID: "org:core:1.0.0", Name: "Core", Version: "1.0.0"}}, s.Packages)
	assert.Equal(t, []Entry{{ID: q.String(), Name: "Data Plan"}}, s.Questionnaires)
	assert.NotNil(t, s.DocumentTemplates)
	assert.Empty(t, s.Documents)
}

func seed(t *testing.T) (*Command, *cli.MockUi, uuid.UUID) {
	t.Helper()

	db := cmdtest.OpenDB(t)
	tenant := uuid.New()
	require.NoError(t, db.Create(&models.Package{
		ID: "org:core:1.0.0", Name: "Core", Version: "1.0.0", Events: models.JSON(`[]`), TenantUUID: tenant,
	}).Error)
	require.NoError(t, db.Create(&models.Package{
		ID: "other:core:1.0.0", Name: "Other", Events: models.JSON(`[]`), TenantUUID: uuid.New(),
	}).Error)

	base, ui := cmdtest.NewCommand(t, db)
	return &Command{Command: base}, ui, tenant
}

func TestRun_YAML(t *testing.T) {
	c, ui, tenant := seed(t)

	code := c.Run([]string{"-config", cmdtest.ConfigPath, "-tenant", tenant.String()})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	var got Summary
	require.NoError(t, yaml.Unmarshal([]byte(ui.OutputWriter.String()), &got))
	assert.Equal(t, []Entry{{ID: "org:core:1.0.0", Name: "Core", Version: "1.0.0"}}, got.Packages)
	assert.Empty(t, got.Questionnaires)
}

func TestRun_JSON(t *testing.T) {
	c, ui, tenant := seed(t)

	code := c.Run([]string{"-config", cmdtest.ConfigPath, "-tenant", tenant.String(), "-format", "json"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	var got Summary
	require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &got))
	require.Len(t, got.Packages, 1)
	assert.Equal(t, "org:core:1.0.0", got.Packages[0].ID)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no tenant", []string{"-config", cmdtest.ConfigPath}, "tenant flag is required"},
		{"bad tenant", []string{"-config", cmdtest.ConfigPath, "-tenant", "x"}, "invalid tenant"},
		{"bad format", []string{"-config", cmdtest.ConfigPath, "-tenant", uuid.NewString(), "-format", "xml"}, "unsupported format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ui, _ := seed(t)
			assert.Equal(t, 1, c.Run(tt.args))
			assert.Contains(t, ui.ErrorWriter.String(), tt.wantErr)
		})
	}
}
