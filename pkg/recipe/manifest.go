package recipe

import (
	"encoding/json"
	"fmt"
)

// Fixed importer settings written into every manifest.
const (
	manifestS3Dir = "app"

	// Seconds the importer waits after applying a seed before the target
	// deployment is used.
	manifestInitWait = 20.0
)

// Manifest is the descriptor consumed by the external seed importer.
type Manifest struct {
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	DB          ManifestDB    `json:"db"`
	S3          ManifestS3    `json:"s3"`
	UUIDs       ManifestUUIDs `json:"uuids"`
	InitWait    float64       `json:"initWait"`
}

// ManifestDB lists the scripts to run, strictly in order.
type ManifestDB struct {
	Scripts             []ManifestPath `json:"scripts"`
	TenantIDPlaceholder string         `json:"tenantIdPlaceholder"`
}

// ManifestS3 tells the importer which archive trees to copy into object
// storage and how to rewrite file names on the way.
type ManifestS3 struct {
	Dir             string            `json:"dir"`
	Copy            []ManifestPath    `json:"copy"`
	FilenameReplace map[string]string `json:"filenameReplace"`
}

// ManifestUUIDs describes the identifier tokens used in the scripts.
type ManifestUUIDs struct {
	Count       int    `json:"count"`
	Placeholder string `json:"placeholder"`
}

// ManifestPath is one archive-relative path.
type ManifestPath struct {
	Path string `json:"path"`
}

// NewManifest describes a finished build.
func NewManifest(instr *Instruction, scripts []string, uuidCount int) *Manifest {
	m := &Manifest{
		Name: instr.Name,
		DB: ManifestDB{
			Scripts:             make([]ManifestPath, 0, len(scripts)),
			TenantIDPlaceholder: TenantPlaceholder,
		},
		S3: ManifestS3{
			Dir:             manifestS3Dir,
			Copy:            []ManifestPath{{Path: FilesDir}},
			FilenameReplace: map[string]string{":": "_"},
		},
		UUIDs: ManifestUUIDs{
			Count:       uuidCount,
			Placeholder: UUIDPlaceholder,
		},
		InitWait: manifestInitWait,
	}
	if instr.Description != "" {
		desc := instr.Description
		m.Description = &desc
	}
	for _, s := range scripts {
		m.DB.Scripts = append(m.DB.Scripts, ManifestPath{Path: s})
	}
	return m
}

// FileName is the archive path of the manifest.
func (m *Manifest) FileName() string {
	return m.Name + ".seed.json"
}

// Marshal encodes the manifest as indented JSON.
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("error encoding manifest: %w", err)
	}
	return data, nil
}
