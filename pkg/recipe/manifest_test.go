package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_Marshal(t *testing.T) {
	instr := &Instruction{
		Name:       "demo",
		TenantUUID: uuid.New(),
	}

	m := NewManifest(instr, []string{"packages/1__a.sql", "documents/d.sql"}, 2)
	assert.Equal(t, "demo.seed.json", m.FileName())

	data, err := m.Marshal()
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name": "demo",
		"description": null,
		"db": {
			"scripts": [
				{"path": "packages/1__a.sql"},
				{"path": "documents/d.sql"}
			],
			"tenantIdPlaceholder": "<<|TENANT-ID|>>"
		},
		"s3": {
			"dir": "app",
			"copy": [{"path": "files"}],
			"filenameReplace": {":": "_"}
		},
		"uuids": {
			"count": 2,
			"placeholder": "{{-UUID[n]-}}"
		},
		"initWait": 20
	}`, string(data))

	// Four-space indentation.
	assert.Contains(t, string(data), "\n    \"name\": \"demo\"")
}

func TestManifest_EmptyBuild(t *testing.T) {
	m := NewManifest(&Instruction{Name: "empty", Description: "nothing"}, nil, 0)

	data, err := m.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scripts": []`)
	assert.Contains(t, string(data), `"description": "nothing"`)
	assert.Contains(t, string(data), `"count": 0`)
}
