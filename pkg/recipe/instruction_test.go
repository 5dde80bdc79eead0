package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstruction_JSON(t *testing.T) {
	data := []byte(`{
		"name": "demo",
		"description": "Demo seed",
		"tenantUuid": "00000000-0000-0000-0000-000000000000",
		"packages": [{"id": "org:core:1.0.0", "includeDependencies": true}],
		"documentTemplates": [{"id": "org:tmpl:1.0.0"}],
		"questionnaires": [{
			"uuid": "6d1fc2c8-7a51-4b59-9a8e-4b5bb5f2f0c1",
			"newUuid": true,
			"includeVersions": true
		}],
		"documents": []
	}`)

	// The nil tenant is rejected; everything else is well formed.
	_, err := ParseInstruction(data, FormatJSON)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "tenantUuid")

	tenant := uuid.New()
	data = []byte(`{
		"name": "demo",
		"tenantUuid": "` + tenant.String() + `",
		"packages": [{"id": "org:core:1.0.0", "includeDependencies": true}],
		"questionnaires": [{
			"uuid": "6d1fc2c8-7a51-4b59-9a8e-4b5bb5f2f0c1",
			"newUuid": true,
			"includeVersions": true
		}]
	}`)

	instr, err := ParseInstruction(data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "demo", instr.Name)
	assert.Equal(t, tenant, instr.TenantUUID)
	require.Len(t, instr.Packages, 1)
	assert.True(t, instr.Packages[0].IncludeDependencies)
	require.Len(t, instr.Questionnaires, 1)
	assert.True(t, instr.Questionnaires[0].NewUUID)
	assert.False(t, instr.Questionnaires[0].IncludeDependencies)
	assert.True(t, instr.Questionnaires[0].IncludeVersions)
}

func TestParseInstruction_YAML(t *testing.T) {
	tenant := uuid.New()
	data := []byte(`
name: demo
tenantUuid: ` + tenant.String() + `
documents:
  - uuid: 6d1fc2c8-7a51-4b59-9a8e-4b5bb5f2f0c1
    newUuid: true
    anonymize: true
    includeDependencies: true
`)

	instr, err := ParseInstruction(data, FormatFromPath("seed.YML"))
	require.NoError(t, err)
	require.Len(t, instr.Documents, 1)
	doc := instr.Documents[0]
	assert.Equal(t, "6d1fc2c8-7a51-4b59-9a8e-4b5bb5f2f0c1", doc.UUID.String())
	assert.True(t, doc.NewUUID)
	assert.True(t, doc.Anonymize)
	assert.True(t, doc.IncludeDependencies)
}

func TestParseInstruction_Malformed(t *testing.T) {
	_, err := ParseInstruction([]byte(`{"name": `), FormatJSON)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var buildErr *Error
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "DecodeInstruction", buildErr.Op)
}

func TestInstruction_Validate(t *testing.T) {
	tenant := uuid.New()

	tests := []struct {
		name    string
		instr   Instruction
		wantErr []string
	}{
		{
			name:  "minimal",
			instr: Instruction{Name: "demo", TenantUUID: tenant},
		},
		{
			name:    "missing name",
			instr:   Instruction{TenantUUID: tenant},
			wantErr: []string{"name"},
		},
		{
			name:    "name with separator",
			instr:   Instruction{Name: "a/b", TenantUUID: tenant},
			wantErr: []string{"path separators"},
		},
		{
			name: "every problem reported",
			instr: Instruction{
				Name:              "demo",
				TenantUUID:        tenant,
				Packages:          []PackageRef{{}},
				DocumentTemplates: []DocumentTemplateRef{{}},
				Questionnaires:    []QuestionnaireRef{{}},
				Documents:         []DocumentRef{{}},
			},
			wantErr: []string{
				"packages[0].id",
				"documentTemplates[0].id",
				"questionnaires[0].uuid",
				"documents[0].uuid",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.instr.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("seed.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("dir/seed.yml"))
	assert.Equal(t, FormatJSON, FormatFromPath("seed.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("seed"))
}
