package recipe

import (
	"github.com/google/uuid"
)

// Kind is an entity kind of the recipe.
type Kind string

const (
	KindPackage          Kind = "package"
	KindDocumentTemplate Kind = "document template"
	KindQuestionnaire    Kind = "questionnaire"
	KindDocument         Kind = "document"
)

// buildState is the only mutable state of a build. Every Build call owns
// exactly one and drops it when the archive is returned.
type buildState struct {
	tenant  uuid.UUID
	seen    map[Kind]map[string]struct{}
	uuids   *UUIDRemapper
	archive *ArchivePackager
	blobs   *BlobCollector
}

func newBuildState(tenant uuid.UUID, objects ObjectReader) *buildState {
	archive := NewArchivePackager()
	return &buildState{
		tenant:  tenant,
		seen:    make(map[Kind]map[string]struct{}),
		uuids:   NewUUIDRemapper(),
		archive: archive,
		blobs:   newBlobCollector(objects, tenant, archive),
	}
}

// markSeen records key for kind and reports whether it was new.
func (s *buildState) markSeen(kind Kind, key string) bool {
	keys, ok := s.seen[kind]
	if !ok {
		keys = make(map[string]struct{})
		s.seen[kind] = keys
	}
	if _, ok := keys[key]; ok {
		return false
	}
	keys[key] = struct{}{}
	return true
}
