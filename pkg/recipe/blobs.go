package recipe

import (
	"context"
	"path"

	"github.com/google/uuid"
)

// ObjectReader reads payloads from tenant-scoped object storage.
type ObjectReader interface {
	// Get returns the object stored under key for tenant. uuid.Nil selects
	// the unscoped root of the store.
	Get(ctx context.Context, tenant uuid.UUID, key string) ([]byte, error)
}

// BlobCollector copies payloads from object storage into the archive.
type BlobCollector struct {
	objects ObjectReader
	tenant  uuid.UUID
	archive *ArchivePackager
}

func newBlobCollector(objects ObjectReader, tenant uuid.UUID, archive *ArchivePackager) *BlobCollector {
	return &BlobCollector{
		objects: objects,
		tenant:  tenant,
		archive: archive,
	}
}

// Fetch reads one object in a single attempt.
func (c *BlobCollector) Fetch(ctx context.Context, key string) ([]byte, error) {
	data, err := c.objects.Get(ctx, c.tenant, key)
	if err != nil {
		return nil, storageFailure("Fetch", key, err)
	}
	return data, nil
}

// Collect fetches key and stages it in the archive under files/<dest>.
func (c *BlobCollector) Collect(ctx context.Context, key, dest string) error {
	data, err := c.Fetch(ctx, key)
	if err != nil {
		return err
	}
	return c.archive.AddFile(dest, data)
}

// Object keys. Archive destinations use the same layout with remapped
// identifiers substituted.

func templateAssetKey(templateID string, asset uuid.UUID) string {
	return path.Join("templates", templateID, asset.String())
}

func templateAssetDest(templateID string, asset uuid.UUID) string {
	return path.Join("templates", sanitizeID(templateID), asset.String())
}

func questionnaireFileKey(questionnaireID string, file uuid.UUID) string {
	return path.Join("questionnaire-files", questionnaireID, file.String())
}

func documentKey(documentID string) string {
	return path.Join("documents", documentID)
}
