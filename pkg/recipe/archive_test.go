package recipe

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readArchive returns every entry of a zip archive keyed by path, along with
// the entry order.
func readArchive(t *testing.T, data []byte) (map[string]string, []string) {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string]string, len(zr.File))
	var order []string
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		entries[f.Name] = string(body)
		order = append(order, f.Name)
	}
	return entries, order
}

func TestArchivePackager(t *testing.T) {
	a := NewArchivePackager()

	require.NoError(t, a.AddScript(a.packageScriptPath("org:core:1.0.0"), "A;\n"))
	require.NoError(t, a.AddScript(a.packageScriptPath("org:core:2.0.0"), "B;\n"))
	require.NoError(t, a.AddScript("document-template/x/02__assets.sql", ""))
	require.NoError(t, a.AddFile("documents/abc", []byte{0x00, 0xff}))
	require.NoError(t, a.AddManifest("demo.seed.json", []byte("{}")))

	assert.Equal(t, []string{
		"packages/1__org_core_1.0.0.sql",
		"packages/2__org_core_2.0.0.sql",
		"document-template/x/02__assets.sql",
	}, a.Scripts())

	data, err := a.Close()
	require.NoError(t, err)

	entries, _ := readArchive(t, data)
	assert.Len(t, entries, 5)
	assert.Equal(t, "A;\n", entries["packages/1__org_core_1.0.0.sql"])
	assert.Equal(t, "", entries["document-template/x/02__assets.sql"])
	assert.Equal(t, "\x00\xff", entries["files/documents/abc"])
	assert.Equal(t, "{}", entries["demo.seed.json"])
}

func TestArchivePackager_DuplicatePath(t *testing.T) {
	a := NewArchivePackager()
	require.NoError(t, a.AddFile("templates/x/1", []byte("a")))
	assert.Error(t, a.AddFile("templates/x/1", []byte("b")))
}

func TestPathHelpers(t *testing.T) {
	id := uuid.MustParse("6d1fc2c8-7a51-4b59-9a8e-4b5bb5f2f0c1")

	assert.Equal(t, "document-template/org_tmpl_1.0.0", documentTemplateDir("org:tmpl:1.0.0"))
	assert.Equal(t,
		"questionnaires/my_plan_6d1fc2c8-7a51-4b59-9a8e-4b5bb5f2f0c1",
		questionnaireDir("My Plan", id),
	)
	assert.Equal(t,
		"documents/a_b_report_6d1fc2c8-7a51-4b59-9a8e-4b5bb5f2f0c1.sql",
		documentScriptPath("a/b Report", id),
	)
}
