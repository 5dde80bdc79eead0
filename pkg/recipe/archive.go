package recipe

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"
)

// FilesDir is the archive directory holding copied object-store payloads.
const FilesDir = "files"

// ArchivePackager writes scripts and payloads into one zip archive and keeps
// the ordered list of script paths for the manifest.
type ArchivePackager struct {
	buf         *bytes.Buffer
	zw          *zip.Writer
	scripts     []string
	written     map[string]struct{}
	nextPackage int
}

// NewArchivePackager returns an empty in-memory archive.
func NewArchivePackager() *ArchivePackager {
	buf := new(bytes.Buffer)
	return &ArchivePackager{
		buf:         buf,
		zw:          zip.NewWriter(buf),
		written:     make(map[string]struct{}),
		nextPackage: 1,
	}
}

// AddScript writes a SQL script and appends its path to the script list.
func (a *ArchivePackager) AddScript(name, sql string) error {
	if err := a.write(name, []byte(sql)); err != nil {
		return err
	}
	a.scripts = append(a.scripts, name)
	return nil
}

// AddFile writes a payload under the files/ tree.
func (a *ArchivePackager) AddFile(name string, data []byte) error {
	return a.write(path.Join(FilesDir, name), data)
}

// AddManifest writes the descriptor at the archive root.
func (a *ArchivePackager) AddManifest(name string, data []byte) error {
	return a.write(name, data)
}

// Scripts returns the script paths in the order they were added.
func (a *ArchivePackager) Scripts() []string {
	return append([]string(nil), a.scripts...)
}

// Close finalizes the archive and returns its bytes.
func (a *ArchivePackager) Close() ([]byte, error) {
	if err := a.zw.Close(); err != nil {
		return nil, fmt.Errorf("error finalizing archive: %w", err)
	}
	return a.buf.Bytes(), nil
}

func (a *ArchivePackager) write(name string, data []byte) error {
	if _, ok := a.written[name]; ok {
		return fmt.Errorf("archive path %q written twice", name)
	}

	w, err := a.zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("error creating archive entry %q: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("error writing archive entry %q: %w", name, err)
	}

	a.written[name] = struct{}{}
	return nil
}

// packageScriptPath returns the path of the next package script. The
// counter makes the on-disk order follow the dependency order.
func (a *ArchivePackager) packageScriptPath(id string) string {
	p := fmt.Sprintf("packages/%d__%s.sql", a.nextPackage, sanitizeID(id))
	a.nextPackage++
	return p
}

// sanitizeID makes a package or template ID usable as a path segment.
func sanitizeID(id string) string {
	return strings.ReplaceAll(id, ":", "_")
}

var pathSegmentReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
)

// nameSegment turns a display name into a lower snake-case path segment.
func nameSegment(name string) string {
	return pathSegmentReplacer.Replace(strcase.ToSnake(name))
}

func documentTemplateDir(id string) string {
	return path.Join("document-template", sanitizeID(id))
}

// The UUID suffix keeps entities with equal names apart.
func questionnaireDir(name string, id uuid.UUID) string {
	return path.Join("questionnaires", nameSegment(name)+"_"+id.String())
}

func documentScriptPath(name string, id uuid.UUID) string {
	return path.Join("documents", nameSegment(name)+"_"+id.String()+".sql")
}
